package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/ingestion"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/observability"
)

// defaultConcurrency bounds parallel extractions when neither flag nor config sets it.
const defaultConcurrency = 4

var extractTextCmd = &cobra.Command{
	Use:   "extract-text [files...]",
	Short: "Extract cleaned text from CV files",
	Long: `Extract and clean the text of PDF, DOCX, DOC and plain-text CV files.
For every input, <name>.txt and <name>.meta.json are written to --out-dir.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtractText,
}

var (
	textOutDir      string
	textConcurrency int
)

func init() {
	extractTextCmd.Flags().StringVarP(&textOutDir, "out-dir", "o", "", "Output directory")
	extractTextCmd.Flags().IntVarP(&textConcurrency, "concurrency", "c", 0, "Files extracted in parallel (default 4)")

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(cmd *cobra.Command, args []string) error {
	outDir := firstNonEmpty(textOutDir, fileConfig.OutDir)
	if outDir == "" {
		return fmt.Errorf("--out-dir is required")
	}
	concurrency := textConcurrency
	if concurrency == 0 {
		concurrency = fileConfig.Concurrency
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	names := make(map[string]string, len(args))
	for _, path := range args {
		base := filepath.Base(path)
		if prev, dup := names[base]; dup {
			return fmt.Errorf("%s and %s would write the same output files", prev, path)
		}
		names[base] = path
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var mu sync.Mutex

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for _, path := range args {
		path := path
		g.Go(func() error {
			ingested, err := ingestion.IngestFromFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := ingestion.WriteOutput(outDir, path, ingested.Text, ingested.Metadata); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			mu.Lock()
			printer.PrintIngestion(ingested.Metadata)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d files to %s\n", len(args), outDir)
	return nil
}

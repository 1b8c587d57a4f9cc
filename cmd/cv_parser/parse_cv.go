package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/config"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/llm"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/observability"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/pipeline"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/storage"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

var parseCVCmd = &cobra.Command{
	Use:   "parse-cv",
	Short: "Extract structured data from a local CV file",
	Long: `Run the CV extraction pipeline on a local file: text extraction, input
selection and AI parsing with the work-experience second pass. API keys come
from OPENAI_API_KEY and GROQ_API_KEY or the config file.`,
	RunE: runParseCV,
}

var (
	cvFile     string
	cvProvider string
	cvDebug    bool
)

func init() {
	parseCVCmd.Flags().StringVarP(&cvFile, "file", "f", "", "Path to the CV file (required)")
	parseCVCmd.Flags().StringVarP(&cvProvider, "provider", "p", "", "Preferred provider: openai or groq")
	parseCVCmd.Flags().BoolVar(&cvDebug, "debug", false, "Include extraction details in the output")

	_ = parseCVCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(parseCVCmd)
}

// staticSettings serves one settings record for every user.
type staticSettings types.UserSettings

func (s staticSettings) GetSettings(context.Context, uuid.UUID) (*types.UserSettings, error) {
	settings := types.UserSettings(s)
	return &settings, nil
}

func runParseCV(cmd *cobra.Command, _ []string) error {
	provider := firstNonEmpty(cvProvider, fileConfig.Provider)
	if provider != "" && llm.ParseProvider(provider) == "" {
		return fmt.Errorf("--provider must be openai or groq, got %q", provider)
	}

	env, err := config.LoadProviderConfig()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(cvFile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cvFile, err)
	}

	p := &pipeline.Pipeline{
		Store:        storage.NewFSStore(filepath.Dir(abs)),
		Settings:     staticSettings{PreferredProvider: provider},
		LLMConfig:    llmConfig(env),
		FallbackKeys: fallbackKeys(env, fileConfig.OpenAIKey, fileConfig.GroqKey),
	}
	if verbose {
		p.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", e.Step, e.Message)
		}
	}

	result, err := p.Run(cmd.Context(), uuid.New(), types.ExtractCVRequest{
		CVFilePath: filepath.Base(abs),
		Debug:      cvDebug,
	})
	if err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintExtraction(result.Job)
		printer.PrintCVData(result.Data)
	}

	resp := types.Envelope{Success: true, Data: result.Data}
	if cvDebug {
		resp.Debug = result.Job
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

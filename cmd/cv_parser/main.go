// Package main provides the entry point for the CV parser service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/config"
)

var (
	configPath string
	verbose    bool

	// fileConfig holds values from --config, applied as flag defaults.
	fileConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cv_parser",
	Short: "CV and profile parsing service",
	Long: "cv_parser extracts structured CV data from uploaded PDF, DOCX and DOC files with an AI provider, " +
		"and builds ATS-safe résumé documents from profile records.",
	SilenceUsage:      true,
	PersistentPreRunE: loadFileConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file with flag defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed summaries")
}

func loadFileConfig(_ *cobra.Command, _ []string) error {
	fileConfig = config.Config{}
	if configPath == "" {
		return nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fileConfig = *cfg
	if cfg.Verbose {
		verbose = true
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

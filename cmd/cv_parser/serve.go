package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/config"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/db"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/pipeline"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/server"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/server/ratelimit"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/storage"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing POST /extract-cv and POST /extract-profile.
Storage, database, JWT and provider settings are read from the environment.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	var (
		settings   pipeline.SettingsSource
		profiles   server.ProfileSource
		onShutdown func()
	)
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			return err
		}
		settings, profiles, onShutdown = database, database, database.Close
	} else {
		log.Printf("DATABASE_URL not set: user settings and stored profiles are unavailable")
	}

	llmCfg := llmConfig(cfg)
	extractor := &pipeline.Pipeline{
		Store:        storage.NewHTTPStore(cfg.StorageURL, cfg.StorageBucket, cfg.StorageServiceKey),
		Settings:     settings,
		LLMConfig:    llmCfg,
		FallbackKeys: fallbackKeys(cfg, "", ""),
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Extractor:      extractor,
		Profiles:       profiles,
		TokenValidator: server.NewJWTService(jwtCfg).AsTokenValidator(),
		RateLimit:      ratelimit.LoadConfig(),
		OnShutdown:     onShutdown,
	})
	if err != nil {
		if onShutdown != nil {
			onShutdown()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

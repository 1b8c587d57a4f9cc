package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply the embedded SQL migrations for profiles and user settings. --down reverts the latest one.",
	RunE:  runMigrate,
}

var (
	migrateDBURL string
	migrateDown  bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateDBURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the most recent migration")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	databaseURL := firstNonEmpty(migrateDBURL, fileConfig.DatabaseURL, os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return fmt.Errorf("--db-url or DATABASE_URL is required")
	}

	migrateFn := db.Migrate
	if migrateDown {
		migrateFn = db.Rollback
	}
	version, err := migrateFn(cmd.Context(), databaseURL)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database schema at version %d\n", version)
	return nil
}

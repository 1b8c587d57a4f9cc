package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/db"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/fetch"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/observability"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/profile"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

var extractProfileCmd = &cobra.Command{
	Use:   "extract-profile",
	Short: "Build a résumé document from a profile record",
	Long: `Build a normalized résumé document from exactly one profile source:
a JSON profile file, a saved profile page, a profile page URL, or a stored
profile loaded by user id. Work history comes only from the profile itself.`,
	RunE: runExtractProfile,
}

var (
	profileIn      string
	profileHTML    string
	profileURL     string
	profileBrowser bool
	profileUserID  string
	profileDBURL   string
	profileFormat  string
	profileOut     string
)

func init() {
	extractProfileCmd.Flags().StringVarP(&profileIn, "in", "i", "", "Path to a JSON profile record")
	extractProfileCmd.Flags().StringVar(&profileHTML, "html", "", "Path to a saved profile page")
	extractProfileCmd.Flags().StringVarP(&profileURL, "url", "u", "", "URL of a profile page")
	extractProfileCmd.Flags().BoolVar(&profileBrowser, "browser", false, "Render the profile page with a headless browser when needed")
	extractProfileCmd.Flags().StringVar(&profileUserID, "user-id", "", "Load the stored profile of this user")
	extractProfileCmd.Flags().StringVar(&profileDBURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")
	extractProfileCmd.Flags().StringVarP(&profileFormat, "format", "f", "", "Output format: json or text (default json)")
	extractProfileCmd.Flags().StringVarP(&profileOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(extractProfileCmd)
}

func runExtractProfile(cmd *cobra.Command, _ []string) error {
	merged := fileConfig
	userID := profileUserID
	if userID == "" && profileIn == "" && profileHTML == "" && profileURL == "" {
		userID = merged.UserID
	}
	format := firstNonEmpty(profileFormat, merged.Format, string(profile.FormatJSON))
	useBrowser := profileBrowser || merged.UseBrowser

	sources := 0
	for _, s := range []string{profileIn, profileHTML, profileURL, userID} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of --in, --html, --url or --user-id must be provided")
	}
	if format != string(profile.FormatJSON) && format != string(profile.FormatText) {
		return fmt.Errorf("--format must be json or text, got %q", format)
	}

	record, source, err := loadProfileRecord(cmd.Context(), userID, useBrowser, firstNonEmpty(profileDBURL, merged.DatabaseURL, os.Getenv("DATABASE_URL")))
	if err != nil {
		return err
	}

	result := profile.Extract(record, profile.Options{Format: profile.Format(format), Source: source})
	if !result.Success {
		return fmt.Errorf("profile extraction failed: %s", result.Error)
	}

	if verbose && result.Data != nil {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResume(result.Data)
	}

	var output []byte
	if result.Data != nil {
		output, err = json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal résumé: %w", err)
		}
	} else {
		output = []byte(result.Text)
	}
	output = append(output, '\n')

	if profileOut == "" {
		_, err = cmd.OutOrStdout().Write(output)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(profileOut), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(profileOut, output, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Résumé written to %s\n", profileOut)
	return nil
}

func loadProfileRecord(ctx context.Context, userID string, useBrowser bool, databaseURL string) (types.Profile, string, error) {
	switch {
	case profileIn != "":
		data, err := os.ReadFile(profileIn)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read profile: %w", err)
		}
		var record types.Profile
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, "", fmt.Errorf("failed to parse profile JSON: %w", err)
		}
		return record, "file", nil

	case profileHTML != "":
		data, err := os.ReadFile(profileHTML)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read profile page: %w", err)
		}
		record, err := profile.ParsePage(string(data))
		return record, "profile-page", err

	case profileURL != "":
		opts := fetch.DefaultOptions()
		opts.Browser = useBrowser
		opts.Verbose = verbose
		page, err := fetch.Page(ctx, profileURL, opts, nil)
		if err != nil {
			return nil, "", err
		}
		record, err := profile.ParsePage(page.HTML)
		return record, "profile-page", err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid --user-id: %w", err)
	}
	if databaseURL == "" {
		return nil, "", fmt.Errorf("--db-url or DATABASE_URL is required with --user-id")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, "", err
	}
	defer database.Close()

	record, err := database.GetProfile(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if record == nil {
		return nil, "", fmt.Errorf("no stored profile for user %s", id)
	}
	return record, "stored-profile", nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

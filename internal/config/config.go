// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Profile extraction
	UserID     string `json:"user_id,omitempty"`     // User UUID for DB-backed profile extraction
	Format     string `json:"format,omitempty"`      // Output format: json or text
	UseBrowser bool   `json:"use_browser,omitempty"` // Render profile pages with a headless browser

	// CV parsing
	Provider    string `json:"provider,omitempty"`     // Preferred AI provider: openai or groq
	OpenAIKey   string `json:"openai_api_key,omitempty"`
	GroqKey     string `json:"groq_api_key,omitempty"`
	OutDir      string `json:"out_dir,omitempty"`     // Directory for extracted text files
	Concurrency int    `json:"concurrency,omitempty"` // Parallel file extractions

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands after merging with flags.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("config error: 'format' must be json or text, got %q", c.Format)
	}

	switch c.Provider {
	case "", "openai", "groq":
	default:
		return fmt.Errorf("config error: 'provider' must be openai or groq, got %q", c.Provider)
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.OpenAIKey == "" {
		result.OpenAIKey = defaults.OpenAIKey
	}
	if result.GroqKey == "" {
		result.GroqKey = defaults.GroqKey
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

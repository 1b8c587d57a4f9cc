package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds everything the HTTP service reads from the environment.
type ServerConfig struct {
	Port        int
	DatabaseURL string

	StorageURL        string
	StorageBucket     string
	StorageServiceKey string

	OpenAIKey     string
	GroqKey       string
	OpenAIBaseURL string
	GroqBaseURL   string
	OpenAIModel   string
	GroqModel     string
	LLMTimeout    time.Duration
}

// DefaultStorageBucket is the bucket CV uploads are stored in.
const DefaultStorageBucket = "cvs"

// LoadServerConfig reads the service configuration from environment variables.
// STORAGE_URL falls back to SUPABASE_URL and STORAGE_SERVICE_KEY to
// SUPABASE_SERVICE_ROLE_KEY.
func LoadServerConfig() (*ServerConfig, error) {
	cfg, err := loadEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadProviderConfig reads the same environment as LoadServerConfig but
// skips the checks that only the HTTP service needs, such as STORAGE_URL.
// CLI commands use it to pick up API keys and endpoint overrides.
func LoadProviderConfig() (*ServerConfig, error) {
	return loadEnv()
}

func loadEnv() (*ServerConfig, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	timeout, err := envDuration("LLM_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:              port,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		StorageURL:        firstEnv("STORAGE_URL", "SUPABASE_URL"),
		StorageBucket:     envString("STORAGE_BUCKET", DefaultStorageBucket),
		StorageServiceKey: firstEnv("STORAGE_SERVICE_KEY", "SUPABASE_SERVICE_ROLE_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		GroqKey:           os.Getenv("GROQ_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		GroqBaseURL:       os.Getenv("GROQ_BASE_URL"),
		OpenAIModel:       os.Getenv("OPENAI_MODEL"),
		GroqModel:         os.Getenv("GROQ_MODEL"),
		LLMTimeout:        timeout,
	}, nil
}

// Validate checks the values the server cannot start without.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.StorageURL == "" {
		return fmt.Errorf("config error: STORAGE_URL is required")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("config error: LLM_TIMEOUT must be positive")
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// ErrNoProvider is returned when no provider has an API key.
var ErrNoProvider = errors.New("no AI provider configured: add an OpenAI or Groq API key in settings")

// Keys holds the API key for each provider.
type Keys struct {
	OpenAI string
	Groq   string
}

// Get returns the key for a provider
func (k Keys) Get(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return k.OpenAI
	case ProviderGroq:
		return k.Groq
	}
	return ""
}

// Selection is the provider chosen for a request together with its credentials
type Selection struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	Model    string
}

// SelectProvider picks the provider for a user. The stored preference wins when
// a key is available for it; otherwise OpenAI is used before Groq. Keys from the
// user's settings take precedence over the server's fallback keys.
func SelectProvider(settings *types.UserSettings, fallback Keys, config *Config) (*Selection, error) {
	if config == nil {
		config = DefaultConfig()
	}

	keys := fallback
	var preferred Provider
	if settings != nil {
		if k := strings.TrimSpace(settings.OpenAIKey); k != "" {
			keys.OpenAI = k
		}
		if k := strings.TrimSpace(settings.GroqKey); k != "" {
			keys.Groq = k
		}
		preferred = ParseProvider(strings.ToLower(strings.TrimSpace(settings.PreferredProvider)))
	}

	order := []Provider{ProviderOpenAI, ProviderGroq}
	if preferred != "" {
		order = append([]Provider{preferred}, order...)
	}

	for _, provider := range order {
		key := keys.Get(provider)
		if key == "" {
			continue
		}
		ep, ok := config.GetEndpoint(provider)
		if !ok {
			return nil, fmt.Errorf("no endpoint configured for provider %s", provider)
		}
		return &Selection{Provider: provider, APIKey: key, BaseURL: ep.BaseURL, Model: ep.Model}, nil
	}

	return nil, ErrNoProvider
}

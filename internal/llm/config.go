// Package llm provides the chat-completion client used for structured CV extraction.
// Both supported providers speak the same OpenAI-compatible protocol and differ only
// in base URL, model name and API key.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
	// ProviderGroq is the Groq provider (OpenAI-compatible endpoint)
	ProviderGroq Provider = "groq"
)

// DefaultTimeout bounds a single chat-completion request.
const DefaultTimeout = 60 * time.Second

// Endpoint describes where and with which model a provider is called
type Endpoint struct {
	BaseURL string
	Model   string
}

// Config holds the provider configuration for the application
type Config struct {
	Endpoints   map[Provider]Endpoint
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the default configuration for both providers
func DefaultConfig() *Config {
	return &Config{
		Endpoints: map[Provider]Endpoint{
			ProviderOpenAI: {BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
			ProviderGroq:   {BaseURL: "https://api.groq.com/openai/v1", Model: "llama-3.3-70b-versatile"},
		},
		Temperature: 0.1,
		Timeout:     DefaultTimeout,
	}
}

// GetEndpoint returns the endpoint for a provider
func (c *Config) GetEndpoint(provider Provider) (Endpoint, bool) {
	ep, ok := c.Endpoints[provider]
	return ep, ok
}

// WithEndpoint returns a new Config with the provider's base URL and/or model overridden.
// Empty values keep the current setting.
func (c *Config) WithEndpoint(provider Provider, baseURL, model string) *Config {
	newConfig := &Config{
		Endpoints:   make(map[Provider]Endpoint, len(c.Endpoints)),
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
	for k, v := range c.Endpoints {
		newConfig.Endpoints[k] = v
	}

	ep := newConfig.Endpoints[provider]
	if baseURL != "" {
		ep.BaseURL = baseURL
	}
	if model != "" {
		ep.Model = model
	}
	newConfig.Endpoints[provider] = ep
	return newConfig
}

// ParseProvider maps a stored preference to a Provider. Unknown values yield "".
func ParseProvider(s string) Provider {
	switch Provider(s) {
	case ProviderOpenAI, ProviderGroq:
		return Provider(s)
	}
	return ""
}

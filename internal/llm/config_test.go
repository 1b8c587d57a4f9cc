package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	openai, ok := config.GetEndpoint(ProviderOpenAI)
	assert.True(t, ok)
	assert.Equal(t, "https://api.openai.com/v1", openai.BaseURL)
	assert.Equal(t, "gpt-4o-mini", openai.Model)

	groq, ok := config.GetEndpoint(ProviderGroq)
	assert.True(t, ok)
	assert.Equal(t, "https://api.groq.com/openai/v1", groq.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", groq.Model)

	assert.Equal(t, 0.1, config.Temperature)
	assert.Equal(t, DefaultTimeout, config.Timeout)
}

func TestGetEndpoint_Unknown(t *testing.T) {
	_, ok := DefaultConfig().GetEndpoint("gemini")
	assert.False(t, ok)
}

func TestWithEndpoint(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 5 * time.Second
	newConfig := config.WithEndpoint(ProviderGroq, "", "custom-model")

	// Original should be unchanged
	groq, _ := config.GetEndpoint(ProviderGroq)
	assert.Equal(t, "llama-3.3-70b-versatile", groq.Model)

	// New config should have custom model and keep the base URL
	groq, _ = newConfig.GetEndpoint(ProviderGroq)
	assert.Equal(t, "custom-model", groq.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", groq.BaseURL)

	// Other providers and settings should be copied
	openai, _ := newConfig.GetEndpoint(ProviderOpenAI)
	assert.Equal(t, "gpt-4o-mini", openai.Model)
	assert.Equal(t, 5*time.Second, newConfig.Timeout)
}

func TestParseProvider(t *testing.T) {
	assert.Equal(t, ProviderOpenAI, ParseProvider("openai"))
	assert.Equal(t, ProviderGroq, ParseProvider("groq"))
	assert.Equal(t, Provider(""), ParseProvider("anthropic"))
	assert.Equal(t, Provider(""), ParseProvider(""))
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("openai"), ProviderOpenAI)
	assert.Equal(t, Provider("groq"), ProviderGroq)
}

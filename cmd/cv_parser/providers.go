package main

import (
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/config"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/llm"
)

// llmConfig applies the endpoint overrides of the environment configuration.
func llmConfig(cfg *config.ServerConfig) *llm.Config {
	c := llm.DefaultConfig().
		WithEndpoint(llm.ProviderOpenAI, cfg.OpenAIBaseURL, cfg.OpenAIModel).
		WithEndpoint(llm.ProviderGroq, cfg.GroqBaseURL, cfg.GroqModel)
	if cfg.LLMTimeout > 0 {
		c.Timeout = cfg.LLMTimeout
	}
	return c
}

// fallbackKeys returns the server-wide API keys. Non-empty overrides win.
func fallbackKeys(cfg *config.ServerConfig, openAIKey, groqKey string) llm.Keys {
	keys := llm.Keys{OpenAI: cfg.OpenAIKey, Groq: cfg.GroqKey}
	if openAIKey != "" {
		keys.OpenAI = openAIKey
	}
	if groqKey != "" {
		keys.Groq = groqKey
	}
	return keys
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client is an abstraction over chat-completion providers
type Client interface {
	// Chat sends a system and user message and returns the assistant's reply
	Chat(ctx context.Context, system, user string) (string, error)
	// Model returns the model name used for requests
	Model() string
	// Provider returns the provider the client talks to
	Provider() Provider
}

// HTTPError is returned when the provider answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// ChatClient implements Client for OpenAI-compatible chat-completion endpoints.
// OpenAI and Groq differ only in base URL, model and key.
type ChatClient struct {
	api         *openai.Client
	provider    Provider
	model       string
	temperature float32
}

// NewClient creates a chat client for the selected provider
func NewClient(sel *Selection, config *Config) (*ChatClient, error) {
	if sel == nil || sel.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if sel.BaseURL == "" || sel.Model == "" {
		return nil, fmt.Errorf("provider %s has no endpoint configured", sel.Provider)
	}
	if config == nil {
		config = DefaultConfig()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cfg := openai.DefaultConfig(sel.APIKey)
	cfg.BaseURL = strings.TrimRight(sel.BaseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &ChatClient{
		api:         openai.NewClientWithConfig(cfg),
		provider:    sel.Provider,
		model:       sel.Model,
		temperature: float32(config.Temperature),
	}, nil
}

// Chat posts a two-message conversation and returns the first choice's content.
// The provider is asked for a JSON object response.
func (c *ChatClient) Chat(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		log.Printf("[llm] %s %s failed after %s", c.provider, c.model, time.Since(start).Round(time.Millisecond))
		return "", c.wrapError(err)
	}
	log.Printf("[llm] %s %s responded in %s", c.provider, c.model, time.Since(start).Round(time.Millisecond))

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}
	return content, nil
}

// wrapError maps the library's status errors onto HTTPError.
func (c *ChatClient) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &HTTPError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Cause: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &HTTPError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error(), Cause: err}
	}
	return fmt.Errorf("request to %s failed: %w", c.provider, err)
}

// Model returns the model name used for requests
func (c *ChatClient) Model() string {
	return c.model
}

// Provider returns the provider the client talks to
func (c *ChatClient) Provider() Provider {
	return c.provider
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Client is an abstraction over LLM providers
type Client interface {
	// Complete issues exactly one completion (plus a free-text retry when the
	// provider rejects JSON mode) and returns the reply text.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// CompletionRequest carries the two role-tagged turns and the sampling parameters.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	Temperature  float64
	MaxTokens    int
}

// NewRequest creates a completion request
func NewRequest(systemPrompt, userPrompt, model string, temperature float64, maxTokens int) *CompletionRequest {
	return &CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Model:        model,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	}
}

// NewClient creates a new LLM client based on configuration.
// It fails with ErrMissingCredential when apiKey is empty.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, config.CredentialEnv())
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// Unavailable returns a Client whose every call fails with err.
// It keeps the process usable when no credential was found at startup.
func Unavailable(err error) Client {
	return unavailableClient{err: err}
}

type unavailableClient struct {
	err error
}

func (u unavailableClient) Complete(context.Context, *CompletionRequest) (string, error) {
	return "", u.err
}

func (u unavailableClient) Close() error {
	return nil
}

// attemptFunc performs one provider call, in JSON mode or free-text mode.
type attemptFunc func(ctx context.Context, req *CompletionRequest, jsonMode bool) (string, error)

// completeWithFallback asks for JSON first and repeats the identical request in free-text
// mode when the provider rejects JSON mode. Any other failure is returned as is.
func completeWithFallback(ctx context.Context, req *CompletionRequest, attempt attemptFunc) (string, error) {
	text, err := attempt(ctx, req, true)
	if !errors.Is(err, ErrJSONModeUnsupported) {
		return text, err
	}

	slog.Info("JSON response mode rejected, retrying as free text", "model", req.Model, "reason", err)
	text, err = attempt(ctx, req, false)
	if errors.Is(err, ErrJSONModeUnsupported) {
		// Free-text mode has nothing to reject; surface it as a regular failure.
		return "", &APICallError{Message: "provider rejected free-text request", Cause: err}
	}
	return text, err
}

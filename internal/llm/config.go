// Package llm provides the completion client used to turn prompts into job ad text.
// Providers are selected by configuration; every provider exposes the same single-call contract.
package llm

import (
	"fmt"
	"slices"
	"strings"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI Responses API
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Sampling bounds accepted by the generation form and CLI.
const (
	MinTemperature     = 0.0
	MaxTemperature     = 1.0
	DefaultTemperature = 0.3

	MinMaxTokens     = 256
	MaxMaxTokens     = 4000
	DefaultMaxTokens = 1500
)

// Config holds the model configuration for the application
type Config struct {
	Provider     Provider
	Models       []string // Menu offered to recruiters
	DefaultModel string
	BaseURL      string // Optional endpoint override (OpenAI-compatible gateways, tests)
}

// DefaultConfig returns the default configuration (OpenAI)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider:     ProviderOpenAI,
		Models:       []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini", "gpt-4.1"},
		DefaultModel: "gpt-4o-mini",
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:     ProviderGemini,
		Models:       []string{"gemini-2.5-flash-lite", "gemini-2.5-flash", "gemini-2.5-pro"},
		DefaultModel: "gemini-2.5-flash",
	}
}

// ParseProvider parses a provider name. Empty means ProviderOpenAI.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", s)
	}
}

// ConfigFor returns the default configuration of a provider.
func ConfigFor(provider Provider) *Config {
	if provider == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultOpenAIConfig()
}

// CredentialEnv names the environment variable holding the provider's API key.
func (c *Config) CredentialEnv() string {
	if c.Provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// SupportsModel reports whether model is on the menu.
func (c *Config) SupportsModel(model string) bool {
	return slices.Contains(c.Models, model)
}

// ResolveModel returns model, or the default model when model is empty.
func (c *Config) ResolveModel(model string) string {
	if model == "" {
		return c.DefaultModel
	}
	return model
}

// WithModel returns a new Config whose default is model, adding it to the menu if needed.
func (c *Config) WithModel(model string) *Config {
	newConfig := &Config{
		Provider:     c.Provider,
		Models:       slices.Clone(c.Models),
		DefaultModel: c.DefaultModel,
		BaseURL:      c.BaseURL,
	}
	if model == "" {
		return newConfig
	}
	if !newConfig.SupportsModel(model) {
		newConfig.Models = append(newConfig.Models, model)
	}
	newConfig.DefaultModel = model
	return newConfig
}

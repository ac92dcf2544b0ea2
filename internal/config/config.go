// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/types"
)

// Config represents the application configuration, loaded from a JSON or YAML file
// and overlaid with environment variables. All fields are optional.
type Config struct {
	// Provider
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // openai | gemini
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`       // Default model; empty uses the provider default
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"` // Endpoint override
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`   // Usually left to OPENAI_API_KEY / GEMINI_API_KEY

	// Generation defaults
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	Schema      string   `json:"schema,omitempty" yaml:"schema,omitempty"` // full | minimal
	Tones       []string `json:"tones,omitempty" yaml:"tones,omitempty"`
	NoBullets   bool     `json:"no_bullets,omitempty" yaml:"no_bullets,omitempty"`

	// Brand voice sources, in resolution order
	BrandVoice     string `json:"brand_voice,omitempty" yaml:"brand_voice,omitempty"`
	BrandVoiceFile string `json:"brand_voice_file,omitempty" yaml:"brand_voice_file,omitempty"`
	BrandVoiceURL  string `json:"brand_voice_url,omitempty" yaml:"brand_voice_url,omitempty"`

	// Server and logging
	Port      int    `json:"port,omitempty" yaml:"port,omitempty"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	temperature := llm.DefaultTemperature
	return Config{
		Provider:    string(llm.ProviderOpenAI),
		Temperature: &temperature,
		MaxTokens:   llm.DefaultMaxTokens,
		Language:    "Italiano",
		Schema:      string(types.ShapeFull),
		Tones:       toneStrings(types.DefaultStyleOptions().Tones),
		Port:        8080,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset or malformed values stay empty.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Provider:       getenv("LLM_PROVIDER"),
		Model:          getenv("LLM_MODEL"),
		BaseURL:        getenv("LLM_BASE_URL"),
		Language:       getenv("AD_LANGUAGE"),
		Schema:         getenv("AD_SCHEMA"),
		BrandVoice:     getenv("BRAND_VOICE"),
		BrandVoiceFile: getenv("BRAND_VOICE_FILE"),
		BrandVoiceURL:  getenv("BRAND_VOICE_URL"),
		LogLevel:       getenv("LOG_LEVEL"),
		LogFormat:      getenv("LOG_FORMAT"),
	}
	if v := getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := getenv("LLM_TEMPERATURE"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = &t
		}
	}
	if v := getenv("LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	return cfg
}

// Resolve loads the optional config file, overlays the environment and fills defaults.
// Environment values win over file values.
func Resolve(path string, getenv func(string) string) (*Config, error) {
	var fileCfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		fileCfg = *loaded
	}

	env := FromEnv(getenv)
	merged := env.MergeWithDefaults(fileCfg)
	merged = merged.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := types.ParseAdShape(c.Schema); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := types.ParseToneTags(c.Tones); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Temperature != nil && (*c.Temperature < llm.MinTemperature || *c.Temperature > llm.MaxTemperature) {
		return fmt.Errorf("config error: 'temperature' must be between %.1f and %.1f", llm.MinTemperature, llm.MaxTemperature)
	}
	if c.MaxTokens != 0 && (c.MaxTokens < llm.MinMaxTokens || c.MaxTokens > llm.MaxMaxTokens) {
		return fmt.Errorf("config error: 'max_tokens' must be between %d and %d", llm.MinMaxTokens, llm.MaxMaxTokens)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}

	if c.BrandVoiceFile != "" {
		if _, err := os.Stat(c.BrandVoiceFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: brand voice file not found: %s", c.BrandVoiceFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Schema == "" {
		result.Schema = defaults.Schema
	}
	if result.BrandVoice == "" {
		result.BrandVoice = defaults.BrandVoice
	}
	if result.BrandVoiceFile == "" {
		result.BrandVoiceFile = defaults.BrandVoiceFile
	}
	if result.BrandVoiceURL == "" {
		result.BrandVoiceURL = defaults.BrandVoiceURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if unset
	if result.Temperature == nil && defaults.Temperature != nil {
		t := *defaults.Temperature
		result.Temperature = &t
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(result.Tones) == 0 {
		result.Tones = append([]string(nil), defaults.Tones...)
	}

	// Bool fields: cannot distinguish unset from false, so either side enables it
	result.NoBullets = result.NoBullets || defaults.NoBullets

	return result
}

// LLMConfig returns the completion client configuration.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.ConfigFor(provider).WithModel(c.Model)
	cfg.BaseURL = c.BaseURL
	return cfg, nil
}

// Credential returns the API key: the configured value, else the provider's environment variable.
func (c *Config) Credential(getenv func(string) string) string {
	if c.APIKey != "" {
		return c.APIKey
	}
	llmCfg, err := c.LLMConfig()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(getenv(llmCfg.CredentialEnv()))
}

// Shape returns the configured ad schema shape.
func (c *Config) Shape() types.AdShape {
	shape, err := types.ParseAdShape(c.Schema)
	if err != nil {
		return types.ShapeFull
	}
	return shape
}

// StyleOptions returns the default style preselected in forms and the CLI.
func (c *Config) StyleOptions() types.StyleOptions {
	tones, err := types.ParseToneTags(c.Tones)
	if err != nil {
		tones = types.DefaultStyleOptions().Tones
	}
	return types.StyleOptions{Tones: tones, Bullets: !c.NoBullets}
}

// TemperatureOrDefault returns the configured temperature or llm.DefaultTemperature.
func (c *Config) TemperatureOrDefault() float64 {
	if c.Temperature == nil {
		return llm.DefaultTemperature
	}
	return *c.Temperature
}

func toneStrings(tones []types.ToneTag) []string {
	out := make([]string, len(tones))
	for i, t := range tones {
		out[i] = string(t)
	}
	return out
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-assistant/internal/config"
	"github.com/jonathan/jobad-assistant/internal/fetch"
	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/observability"
)

// newClient is replaced in tests.
var newClient = llm.NewClient

// getenv is replaced in tests.
var getenv = os.Getenv

// app is the state shared by every command once configuration is resolved.
type app struct {
	cfg       *config.Config
	llmConfig *llm.Config
	logger    *slog.Logger
	// clientErr is set when the completion client could not be built.
	clientErr error
	client    llm.Client
	generator *generation.Generator
}

// setup resolves configuration, logging, brand voice and the completion client.
// A missing credential does not fail setup; commands decide whether they need the client.
func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(configPath, getenv)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	logger := observability.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	llmConfig, err := cfg.LLMConfig()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	brand := cfg.ResolveBrandVoice(ctx, fetch.New(nil), logger)
	logger.Debug("brand voice resolved", "source", brand.Source, "origin", brand.Origin)

	a := &app{cfg: cfg, llmConfig: llmConfig, logger: logger}
	client, err := newClient(ctx, llmConfig, cfg.Credential(getenv))
	if err != nil {
		a.clientErr = err
		client = llm.Unavailable(err)
		if errors.Is(err, llm.ErrMissingCredential) {
			logger.Warn("completion client unavailable", "provider", llmConfig.Provider, "error", err)
		} else {
			logger.Error("completion client unavailable", "provider", llmConfig.Provider, "error", err)
		}
	}
	a.client = client

	a.generator = generation.New(client, generation.Options{
		BrandVoice: brand.Text,
		Language:   cfg.Language,
		Shape:      cfg.Shape(),
		LLM:        llmConfig,
		Logger:     logger,
	})
	return a, nil
}

// defaultParams returns the configured sampling parameters.
func (a *app) defaultParams() generation.Params {
	return generation.Params{
		Model:       a.llmConfig.ResolveModel(a.cfg.Model),
		Temperature: a.cfg.TemperatureOrDefault(),
		MaxTokens:   a.cfg.MaxTokens,
	}
}

func (a *app) close() {
	if a.client != nil {
		_ = a.client.Close()
	}
}

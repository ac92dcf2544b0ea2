// Package generation runs one job ad submission end to end: draft checks, prompt building,
// the completion call and recovery of the structured ad.
package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/parsing"
	"github.com/jonathan/jobad-assistant/internal/prompts"
	"github.com/jonathan/jobad-assistant/internal/schemas"
	"github.com/jonathan/jobad-assistant/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepValidate = "validate"
	StepPrompts  = "prompts"
	StepComplete = "complete"
	StepRecover  = "recover"
)

// ProgressEvent represents a progress update during a submission
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when a submission moves to its next step
type ProgressCallback func(event ProgressEvent)

// Request is one submission.
type Request struct {
	Draft      types.Draft
	Style      types.StyleOptions
	Params     Params
	OnProgress ProgressCallback
}

// Result is the outcome of a submission that reached the model.
// Ad is nil when the reply could not be recovered; Raw then holds the reply for display.
type Result struct {
	ID       uuid.UUID          `json:"id"`
	Model    string             `json:"model"`
	Ad       *types.GeneratedAd `json:"ad"`
	Raw      string             `json:"raw"`
	Warnings []string           `json:"warnings,omitempty"`
	Duration time.Duration      `json:"-"`
}

// Fallback reports whether the result only carries the raw reply.
func (r *Result) Fallback() bool {
	return r.Ad == nil
}

// Options configure a Generator.
type Options struct {
	BrandVoice string
	Language   string
	Shape      types.AdShape
	LLM        *llm.Config
	Logger     *slog.Logger
}

// Generator turns drafts into structured ads. It is safe for concurrent use;
// everything it holds is read-only after New.
type Generator struct {
	client     llm.Client
	brandVoice string
	language   string
	shape      types.AdShape
	llmConfig  *llm.Config
	logger     *slog.Logger
}

// New creates a Generator around an already constructed client.
func New(client llm.Client, opts Options) *Generator {
	if opts.LLM == nil {
		opts.LLM = llm.DefaultConfig()
	}
	if opts.Shape == "" {
		opts.Shape = types.ShapeFull
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Generator{
		client:     client,
		brandVoice: opts.BrandVoice,
		language:   prompts.NormalizeLanguage(opts.Language),
		shape:      opts.Shape,
		llmConfig:  opts.LLM,
		logger:     opts.Logger,
	}
}

// Shape returns the ad shape requested from the model.
func (g *Generator) Shape() types.AdShape {
	return g.shape
}

// LLMConfig returns the provider configuration, including its model menu.
func (g *Generator) LLMConfig() *llm.Config {
	return g.llmConfig
}

// DefaultParams returns the parameters used when a caller supplies none.
func (g *Generator) DefaultParams() Params {
	return Params{
		Model:       g.llmConfig.DefaultModel,
		Temperature: llm.DefaultTemperature,
		MaxTokens:   llm.DefaultMaxTokens,
	}
}

// Prompts validates a request and renders its two prompts without calling the model.
func (g *Generator) Prompts(req Request) (system, user string, err error) {
	draft := req.Draft.Trimmed()
	if !draft.HasContent() {
		return "", "", ErrEmptySubmission
	}
	if err := validateParams(req.Params, g.llmConfig); err != nil {
		return "", "", err
	}
	if err := validateStyle(req.Style); err != nil {
		return "", "", err
	}

	system, err = prompts.BuildSystemPrompt(g.brandVoice, g.language, req.Style, types.SchemaFor(g.shape))
	if err != nil {
		return "", "", err
	}
	user, err = prompts.BuildUserPrompt(draft)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

// Generate runs one submission. Exactly one Complete call is made, and none when the
// draft is empty or the parameters are invalid.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	emit := func(step, message string, content any) {
		if req.OnProgress != nil {
			req.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
		}
	}

	emit(StepValidate, "Controllo dei campi", nil)
	system, user, err := g.Prompts(req)
	if err != nil {
		return nil, err
	}
	emit(StepPrompts, "Prompt pronti", nil)

	model := g.llmConfig.ResolveModel(req.Params.Model)
	emit(StepComplete, "Generazione in corso...", map[string]string{"model": model})

	raw, err := g.client.Complete(ctx, llm.NewRequest(system, user, model, req.Params.Temperature, req.Params.MaxTokens))
	if err != nil {
		g.logger.Error("completion failed", "model", model, "error", err)
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	result := &Result{ID: uuid.New(), Model: model, Raw: raw}

	emit(StepRecover, "Lettura della risposta", nil)
	ad, record, err := parsing.ParseAd(raw, g.shape)
	if err != nil {
		if !errors.Is(err, parsing.ErrNoRecord) {
			return nil, err
		}
		g.logger.Warn("model reply is not structured, returning raw text", "id", result.ID, "model", model)
		result.Duration = time.Since(start)
		return result, nil
	}

	if verr := schemas.ValidateAd(g.shape, record); verr != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(verr, &schemaErr) {
			result.Warnings = schemaErr.Warnings()
		} else {
			g.logger.Warn("schema check skipped", "error", verr)
		}
	}

	draft := req.Draft.Trimmed()
	ad.Backfill(draft.Location, draft.Contract)
	result.Ad = ad
	result.Duration = time.Since(start)

	g.logger.Info("ad generated",
		"id", result.ID,
		"model", model,
		"shape", g.shape,
		"warnings", len(result.Warnings),
		"duration_ms", result.Duration.Milliseconds())
	return result, nil
}

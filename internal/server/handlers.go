package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/parsing"
	"github.com/jonathan/jobad-assistant/internal/rendering"
	"github.com/jonathan/jobad-assistant/internal/server/middleware"
	"github.com/jonathan/jobad-assistant/internal/types"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// Result statuses.
const (
	StatusOK       = "ok"
	StatusFallback = "fallback"
)

// Notices shown with a result.
const (
	NoticeSuccess  = "Annuncio generato ✔"
	NoticeFallback = "La risposta non era JSON valido. Mostro il testo grezzo qui sotto."
)

// GenerateRequest represents the request body for /api/generate.
// Draft fields sit at the top level; omitted style and parameters take the server defaults.
type GenerateRequest struct {
	types.Draft
	Tones       []string `json:"tones,omitempty"`
	Bullets     *bool    `json:"bullets,omitempty"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
}

// GenerateResponse represents the response for /api/generate.
type GenerateResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Notice    string             `json:"notice"`
	Model     string             `json:"model"`
	Shape     types.AdShape      `json:"shape"`
	Ad        *types.GeneratedAd `json:"ad,omitempty"`
	Raw       string             `json:"raw,omitempty"`
	Warnings  []string           `json:"warnings,omitempty"`
	Markdown  string             `json:"markdown,omitempty"`
	Filenames map[string]string  `json:"filenames,omitempty"`
}

// ExportRequest is the body of /export/{format}.
type ExportRequest struct {
	Ad     map[string]any `json:"ad"`
	Edited string         `json:"edited,omitempty"`
	Shape  string         `json:"shape,omitempty"`
}

// toGeneration fills omitted values from the server defaults.
func (s *Server) toGeneration(req GenerateRequest) generation.Request {
	style := types.StyleOptions{Tones: s.style.Tones, Bullets: s.style.Bullets}
	if req.Tones != nil {
		style.Tones = toneTags(req.Tones)
	}
	if req.Bullets != nil {
		style.Bullets = *req.Bullets
	}

	params := s.params
	if req.Model != "" {
		params.Model = req.Model
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.MaxTokens != 0 {
		params.MaxTokens = req.MaxTokens
	}

	return generation.Request{Draft: req.Draft, Style: style, Params: params}
}

// toneTags keeps unknown values so the generator can reject them.
func toneTags(values []string) []types.ToneTag {
	tags := make([]types.ToneTag, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			tags = append(tags, types.ToneTag(v))
		}
	}
	return tags
}

func (s *Server) newResponse(result *generation.Result) GenerateResponse {
	resp := GenerateResponse{
		ID:       result.ID.String(),
		Model:    result.Model,
		Shape:    s.generator.Shape(),
		Warnings: result.Warnings,
	}
	if result.Fallback() {
		resp.Status = StatusFallback
		resp.Notice = NoticeFallback
		resp.Raw = result.Raw
		return resp
	}

	title := rendering.DisplayTitle(result.Ad)
	resp.Status = StatusOK
	resp.Notice = NoticeSuccess
	resp.Ad = result.Ad
	resp.Markdown = rendering.Markdown(result.Ad, "")
	resp.Filenames = map[string]string{
		string(rendering.FormatMarkdown): rendering.Filename(title, rendering.FormatMarkdown),
		string(rendering.FormatText):     rendering.Filename(title, rendering.FormatText),
	}
	return resp
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// handleGenerate runs one submission synchronously.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.generator.Generate(r.Context(), s.toGeneration(req))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.newResponse(result))
}

// handleGenerateStream runs one submission and reports its steps as Server-Sent Events.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	genReq := s.toGeneration(req)
	genReq.OnProgress = func(event generation.ProgressEvent) {
		sse.WriteEvent(EventStatus, event) //nolint:errcheck
	}

	requestID := middleware.GetRequestID(r.Context()).String()
	result, err := s.generator.Generate(r.Context(), genReq)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("stream generation failed", "request_id", requestID, "error", err)
		}
		sse.WriteError(status, UserMessage(err))
		sse.WriteComplete(requestID, "failed")
		return
	}

	resp := s.newResponse(result)
	if err := sse.WriteEvent(EventResult, resp); err != nil {
		s.logger.Warn("client went away before the result was sent", "request_id", requestID, "error", err)
		return
	}
	sse.WriteComplete(resp.ID, resp.Status)
}

// handleExport returns a posted ad as a downloadable md or txt file.
// It accepts a JSON ExportRequest or a form with the ad record as JSON in the "ad" field.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.failure(w, r, err)
		return
	}

	req, err := s.readExportRequest(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	shape := s.generator.Shape()
	if req.Shape != "" {
		if shape, err = types.ParseAdShape(req.Shape); err != nil {
			s.failure(w, r, &ErrValidation{Field: "shape", Message: err.Error()})
			return
		}
	}

	ad := parsing.DecodeAd(parsing.Record(req.Ad), shape)
	content := rendering.Render(ad, req.Edited, format)
	filename := rendering.Filename(rendering.DisplayTitle(ad), format)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, content); err != nil {
		s.logger.Warn("export write failed", "error", err)
	}
}

func (s *Server) readExportRequest(r *http.Request) (*ExportRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req ExportRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
		if req.Ad == nil {
			return nil, &ErrValidation{Field: "ad", Message: "is required"}
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	req := &ExportRequest{
		Edited: r.PostFormValue("edited"),
		Shape:  r.PostFormValue("shape"),
	}
	if err := json.Unmarshal([]byte(r.PostFormValue("ad")), &req.Ad); err != nil || req.Ad == nil {
		return nil, &ErrValidation{Field: "ad", Message: "must be a JSON object"}
	}
	return req, nil
}

// OptionsResponse lists the menus and bounds offered to clients.
type OptionsResponse struct {
	Provider     llm.Provider  `json:"provider"`
	Models       []string      `json:"models"`
	DefaultModel string        `json:"default_model"`
	Tones        []string      `json:"tones"`
	DefaultTones []string      `json:"default_tones"`
	Bullets      bool          `json:"bullets"`
	Temperature  Bounds        `json:"temperature"`
	MaxTokens    Bounds        `json:"max_tokens"`
	Shape        types.AdShape `json:"shape"`
	Formats      []string      `json:"formats"`
	Available    bool          `json:"available"`
	Warning      string        `json:"warning,omitempty"`
}

// Bounds is a numeric range with its default.
type Bounds struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

func (s *Server) options() OptionsResponse {
	llmCfg := s.generator.LLMConfig()
	resp := OptionsResponse{
		Provider:     llmCfg.Provider,
		Models:       llmCfg.Models,
		DefaultModel: llmCfg.ResolveModel(s.params.Model),
		Tones:        toneStrings(types.ToneTags()),
		DefaultTones: toneStrings(s.style.Tones),
		Bullets:      s.style.Bullets,
		Temperature:  Bounds{Min: llm.MinTemperature, Max: llm.MaxTemperature, Default: s.params.Temperature},
		MaxTokens:    Bounds{Min: llm.MinMaxTokens, Max: llm.MaxMaxTokens, Default: float64(s.params.MaxTokens)},
		Shape:        s.generator.Shape(),
		Formats:      []string{string(rendering.FormatMarkdown), string(rendering.FormatText)},
		Available:    s.credentialErr == nil,
	}
	if s.credentialErr != nil {
		resp.Warning = credentialWarning(s.credentialErr)
	}
	return resp
}

func credentialWarning(err error) string {
	if errors.Is(err, llm.ErrMissingCredential) {
		return fmt.Sprintf("⚠️ Credenziale mancante: %v", err)
	}
	return fmt.Sprintf("⚠️ Servizio AI non disponibile: %v", err)
}

func toneStrings(tones []types.ToneTag) []string {
	out := make([]string, len(tones))
	for i, t := range tones {
		out[i] = string(t)
	}
	return out
}

// handleOptions returns the model menu, tone vocabulary and parameter bounds.
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.options())
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	llmStatus := "ready"
	if s.credentialErr != nil {
		llmStatus = "unavailable"
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "llm": llmStatus})
}

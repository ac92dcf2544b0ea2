package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/ingestion"
	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/rendering"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty submission", generation.ErrEmptySubmission, http.StatusBadRequest},
		{"invalid params", &generation.ValidationError{Fields: []generation.FieldError{{Field: "temperature"}}}, http.StatusBadRequest},
		{"request validation", &ErrValidation{Field: "ad", Message: "is required"}, http.StatusBadRequest},
		{"render", &rendering.RenderError{Message: "unknown export format"}, http.StatusBadRequest},
		{"unsupported upload", fmt.Errorf("upload: %w", ingestion.ErrUnsupportedFormat), http.StatusUnsupportedMediaType},
		{"missing credential", fmt.Errorf("%w: set OPENAI_API_KEY", llm.ErrMissingCredential), http.StatusServiceUnavailable},
		{"empty response", generation.ErrEmptyResponse, http.StatusBadGateway},
		{"api error", &llm.APICallError{StatusCode: 429, Message: "quota"}, http.StatusBadGateway},
		{"timeout", &llm.APICallError{Message: "request failed", Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Nessuna risposta dal modello.", UserMessage(generation.ErrEmptyResponse))
	assert.Equal(t, "Inserisci almeno il titolo o una bozza di contenuto.", UserMessage(generation.ErrEmptySubmission))
	assert.Contains(t, UserMessage(&llm.APICallError{Provider: llm.ProviderGemini, Message: "bad"}), "Errore API: API call failed (gemini)")
	assert.Contains(t, UserMessage(fmt.Errorf("%w: set GEMINI_API_KEY", llm.ErrMissingCredential)), "GEMINI_API_KEY")
	assert.Equal(t, "Errore: boom", UserMessage(errors.New("boom")))
}

func TestErrValidation_Error(t *testing.T) {
	err := &ErrValidation{Field: "ad", Message: "is required"}
	assert.Equal(t, "validation error: ad - is required", err.Error())
}

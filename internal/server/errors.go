// Package server provides the HTTP form page and JSON API of the job ad assistant.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/ingestion"
	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		paramErr      *generation.ValidationError
		renderErr     *rendering.RenderError
		apiErr        *llm.APICallError
	)

	switch {
	case errors.Is(err, generation.ErrEmptySubmission),
		errors.As(err, &paramErr),
		errors.As(err, &validationErr),
		errors.As(err, &renderErr):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, llm.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, generation.ErrEmptyResponse), errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the Italian message shown to recruiters for an error.
func UserMessage(err error) string {
	var (
		paramErr *generation.ValidationError
		apiErr   *llm.APICallError
	)

	switch {
	case errors.Is(err, generation.ErrEmptySubmission):
		return "Inserisci almeno il titolo o una bozza di contenuto."
	case errors.As(err, &paramErr):
		return "Parametri non validi: " + paramErr.Error()
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return "Formato file non supportato: usa .txt, .md, .pdf o .docx."
	case errors.Is(err, llm.ErrMissingCredential):
		return "Servizio AI non configurato: " + err.Error()
	case errors.Is(err, generation.ErrEmptyResponse):
		return "Nessuna risposta dal modello."
	case errors.As(err, &apiErr):
		return "Errore API: " + apiErr.Error()
	default:
		return "Errore: " + err.Error()
	}
}

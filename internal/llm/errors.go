package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential is returned when no API key is configured for the provider.
var ErrMissingCredential = errors.New("missing API credential")

// ErrJSONModeUnsupported signals that the provider refused the structured JSON response mode.
// Clients handle it internally by retrying in free-text mode.
var ErrJSONModeUnsupported = errors.New("structured JSON response mode not supported")

// APICallError represents a transport, authentication or provider-side failure.
type APICallError struct {
	Provider   Provider
	StatusCode int // Zero when no HTTP response was received
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	var sb strings.Builder
	sb.WriteString("API call failed")
	if e.Provider != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Provider))
	}
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(": status %d", e.StatusCode))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// jsonModeMarkers are fragments providers use when rejecting the JSON response mode.
var jsonModeMarkers = []string{
	"text.format",
	"response_format",
	"json_object",
	"json mode",
	"response_mime_type",
	"responsemimetype",
}

// isJSONModeRejection reports whether a provider error refers to the JSON response mode.
func isJSONModeRejection(param, message string) bool {
	param = strings.ToLower(param)
	if param == "text.format" || param == "text.format.type" || param == "response_format" {
		return true
	}
	message = strings.ToLower(message)
	for _, marker := range jsonModeMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

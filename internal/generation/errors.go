package generation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySubmission is returned when the draft carries no usable content.
var ErrEmptySubmission = errors.New("empty submission: paste the ad text or fill at least one field")

// ErrEmptyResponse is returned when the model replies with blank text.
var ErrEmptyResponse = errors.New("empty response from model")

// ValidationError reports request parameters outside their allowed range.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is one rejected parameter.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

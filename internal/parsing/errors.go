package parsing

import (
	"errors"
	"fmt"
)

// ErrNoRecord is returned when a model reply contains no recoverable JSON object.
var ErrNoRecord = errors.New("no JSON object could be recovered")

// ParseError represents a model reply that could not be turned into an ad
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

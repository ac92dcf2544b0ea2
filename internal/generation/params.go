package generation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobad-assistant/internal/llm"
	"github.com/jonathan/jobad-assistant/internal/types"
)

// Params are the sampling parameters of one submission.
type Params struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature" validate:"gte=0,lte=1"`
	MaxTokens   int     `json:"max_tokens" validate:"gte=256,lte=4000"`
}

var validate = validator.New()

// validateParams checks the bounds and the model menu.
// An empty model stands for the provider default.
func validateParams(p Params, menu *llm.Config) error {
	var fields []FieldError

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: jsonName(fe.Field()), Message: boundMessage(fe)})
		}
	}

	if p.Model != "" && menu != nil && !menu.SupportsModel(p.Model) {
		fields = append(fields, FieldError{Field: "model", Message: fmt.Sprintf("%q is not available for %s", p.Model, menu.Provider)})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateStyle rejects tone tags outside the vocabulary.
func validateStyle(style types.StyleOptions) error {
	if err := style.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: "tones", Message: fmt.Sprintf("contains unknown tone %q", fe.Value())})
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

func jsonName(field string) string {
	switch field {
	case "Temperature":
		return "temperature"
	case "MaxTokens":
		return "max_tokens"
	default:
		return field
	}
}

func boundMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

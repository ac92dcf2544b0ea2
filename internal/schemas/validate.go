// Package schemas validates recovered job ad records against the JSON Schema of their shape.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/jobad-assistant/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed ads/*.schema.json
var adSchemas embed.FS

var (
	compiled   = map[types.AdShape]*gojsonschema.Schema{}
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Warnings flattens the field errors into display lines.
func (ve *ValidationError) Warnings() []string {
	lines := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		lines = append(lines, fe.String())
	}
	return lines
}

// AdSchemaJSON returns the embedded schema document of a shape.
func AdSchemaJSON(shape types.AdShape) (string, error) {
	path := schemaPath(shape)
	data, err := adSchemas.ReadFile(path)
	if err != nil {
		return "", &SchemaLoadError{Path: path, Message: "embedded schema missing", Cause: err}
	}
	return string(data), nil
}

func schemaPath(shape types.AdShape) string {
	if shape == types.ShapeMinimal {
		return "ads/minimal.schema.json"
	}
	return "ads/full.schema.json"
}

func adSchema(shape types.AdShape) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[shape]; ok {
		return s, nil
	}
	content, err := AdSchemaJSON(shape)
	if err != nil {
		return nil, err
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: schemaPath(shape), Message: "invalid schema", Cause: err}
	}
	compiled[shape] = s
	return s, nil
}

// ValidateAd checks a recovered record against the schema of shape.
// It returns nil when the record conforms and a *ValidationError listing every deviation otherwise.
func ValidateAd(shape types.AdShape, record map[string]any) error {
	schema, err := adSchema(shape)
	if err != nil {
		return err
	}
	if record == nil {
		record = map[string]any{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(record))
	if err != nil {
		return &SchemaLoadError{Path: schemaPath(shape), Message: "document could not be loaded", Cause: err}
	}
	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

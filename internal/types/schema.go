package types

import (
	"fmt"
	"strings"
)

// AdShape selects which output schema the model is asked to produce.
type AdShape string

const (
	// ShapeFull is the canonical schema with title, benefits, details and the full text.
	ShapeFull AdShape = "full"
	// ShapeMinimal is the four-field schema (general description plus three lists).
	ShapeMinimal AdShape = "minimal"
)

// ParseAdShape parses a configuration value. Empty means ShapeFull.
func ParseAdShape(s string) (AdShape, error) {
	switch AdShape(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShapeFull:
		return ShapeFull, nil
	case ShapeMinimal:
		return ShapeMinimal, nil
	default:
		return "", fmt.Errorf("unknown ad schema %q (want %q or %q)", s, ShapeFull, ShapeMinimal)
	}
}

// Wire field names of the generated ad record.
const (
	KeyTitle              = "titolo"
	KeyAbstract           = "abstract"
	KeyGeneralDescription = "descrizione_generale"
	KeyResponsibilities   = "responsabilita"
	KeyQualifications     = "qualifiche"
	KeyEducationLevels    = "livelli_studio"
	KeyEducationLevel     = "livello_studio"
	KeyBenefits           = "benefit"
	KeyDetails            = "dettagli"
	KeyLocation           = "sede"
	KeyContract           = "contratto"
	KeyFullText           = "annuncio_completo"
)

// FieldType is the JSON type hint of a schema field.
type FieldType string

// Field types used by the ad schemas.
const (
	FieldString FieldType = "string"
	FieldList   FieldType = "list"
	FieldObject FieldType = "object"
)

// SchemaField defines a single field of the requested output.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string        // Hint for the model, rendered as a trailing comment
	Fields      []SchemaField // Nested fields for FieldObject
}

// AdSchema is the output contract given to the model.
type AdSchema struct {
	Shape  AdShape
	Fields []SchemaField
}

// SchemaFor returns the schema of a shape.
func SchemaFor(shape AdShape) AdSchema {
	if shape == ShapeMinimal {
		return AdSchema{
			Shape: ShapeMinimal,
			Fields: []SchemaField{
				{Name: KeyGeneralDescription, Type: FieldString, Description: "panoramica del ruolo 3-5 frasi"},
				{Name: KeyResponsibilities, Type: FieldList},
				{Name: KeyQualifications, Type: FieldList},
				{Name: KeyEducationLevel, Type: FieldList},
			},
		}
	}
	return AdSchema{
		Shape: ShapeFull,
		Fields: []SchemaField{
			{Name: KeyTitle, Type: FieldString},
			{Name: KeyAbstract, Type: FieldString, Description: "panoramica 3-5 frasi"},
			{Name: KeyResponsibilities, Type: FieldList},
			{Name: KeyQualifications, Type: FieldList},
			{Name: KeyEducationLevels, Type: FieldList},
			{Name: KeyBenefits, Type: FieldList, Description: "può essere vuoto"},
			{Name: KeyDetails, Type: FieldObject, Fields: []SchemaField{
				{Name: KeyLocation, Type: FieldString},
				{Name: KeyContract, Type: FieldString},
			}},
			{Name: KeyFullText, Type: FieldString, Description: "testo pronto alla pubblicazione"},
		},
	}
}

// Field looks up a top-level field by name.
func (s AdSchema) Field(name string) (SchemaField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

// Describe renders the schema as the literal JSON outline embedded in the instruction prompt.
func (s AdSchema) Describe() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, field := range s.Fields {
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, field.typeHint()))
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf("  // %s", field.Description))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (f SchemaField) typeHint() string {
	switch f.Type {
	case FieldList:
		return "[string, ...]"
	case FieldObject:
		parts := make([]string, 0, len(f.Fields))
		for _, sub := range f.Fields {
			parts = append(parts, fmt.Sprintf("%q: %s", sub.Name, sub.typeHint()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "string"
	}
}

package parsing

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobad-assistant/internal/types"
)

// DecodeAd maps a recovered record onto a GeneratedAd of the given shape.
// Missing or mistyped fields fall back to empty values, so the result is always complete.
func DecodeAd(record Record, shape types.AdShape) *types.GeneratedAd {
	ad := types.NewGeneratedAd(shape)
	if record == nil {
		return ad
	}

	ad.Responsibilities = stringList(record[types.KeyResponsibilities])
	ad.Qualifications = stringList(record[types.KeyQualifications])

	if ad.Shape == types.ShapeMinimal {
		ad.GeneralDescription = scalar(record[types.KeyGeneralDescription])
		ad.EducationLevels = stringList(record[types.KeyEducationLevel])
		return ad
	}

	ad.Title = scalar(record[types.KeyTitle])
	ad.Abstract = scalar(record[types.KeyAbstract])
	ad.EducationLevels = stringList(record[types.KeyEducationLevels])
	ad.Benefits = stringList(record[types.KeyBenefits])
	ad.FullText = scalar(record[types.KeyFullText])

	if details, ok := record[types.KeyDetails].(map[string]any); ok {
		ad.Details.Location = scalar(details[types.KeyLocation])
		ad.Details.Contract = scalar(details[types.KeyContract])
	}

	return ad
}

// scalar converts a JSON value to display text.
func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64, bool:
		return fmt.Sprint(val)
	case []any:
		return strings.Join(stringList(val), "\n")
	default:
		return ""
	}
}

// stringList converts a JSON value to a normalized list of non-blank strings.
// A bare string is treated as a one-item list.
func stringList(v any) []string {
	switch val := v.(type) {
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s := scalar(item); s != "" {
				items = append(items, s)
			}
		}
		return NormalizeList(items)
	case string:
		return NormalizeList([]string{val})
	}
	return []string{}
}

// ParseAd recovers and decodes a model reply in one step.
// The recovered record is returned alongside the ad so callers can validate it against the schema.
// A reply without a usable object, or whose object carries none of the shape's fields,
// yields a *ParseError wrapping ErrNoRecord.
func ParseAd(raw string, shape types.AdShape) (*types.GeneratedAd, Record, error) {
	record, ok := RecoverStructured(raw)
	if !ok || len(record) == 0 {
		return nil, nil, &ParseError{Message: "model reply is not a JSON object", Cause: ErrNoRecord}
	}
	if !hasSchemaField(record, types.SchemaFor(shape)) {
		return nil, nil, &ParseError{Message: "model reply has none of the ad fields", Cause: ErrNoRecord}
	}
	return DecodeAd(record, shape), record, nil
}

func hasSchemaField(record Record, schema types.AdSchema) bool {
	for key := range record {
		if _, ok := schema.Field(key); ok {
			return true
		}
	}
	return false
}

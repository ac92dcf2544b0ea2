package ingestion

import (
	"strings"

	"github.com/jonathan/jobad-assistant/internal/types"
)

type draftField int

const (
	fieldRaw draftField = iota
	fieldTitle
	fieldDescription
	fieldResponsibilities
	fieldQualifications
	fieldEducation
	fieldBenefits
	fieldLocation
	fieldContract
	fieldCount
)

// sectionLabels maps lowercase heading text to the draft field it introduces.
var sectionLabels = map[string]draftField{
	"titolo":               fieldTitle,
	"titolo annuncio":      fieldTitle,
	"title":                fieldTitle,
	"descrizione":          fieldDescription,
	"descrizione generale": fieldDescription,
	"description":          fieldDescription,
	"responsabilità":       fieldResponsibilities,
	"responsabilita":       fieldResponsibilities,
	"attività":             fieldResponsibilities,
	"mansioni":             fieldResponsibilities,
	"responsibilities":     fieldResponsibilities,
	"qualifiche":           fieldQualifications,
	"requisiti":            fieldQualifications,
	"qualifications":       fieldQualifications,
	"requirements":         fieldQualifications,
	"livelli di studio":    fieldEducation,
	"livello di studio":    fieldEducation,
	"titolo di studio":     fieldEducation,
	"formazione":           fieldEducation,
	"education":            fieldEducation,
	"benefit":              fieldBenefits,
	"benefits":             fieldBenefits,
	"vantaggi":             fieldBenefits,
	"sede":                 fieldLocation,
	"luogo di lavoro":      fieldLocation,
	"location":             fieldLocation,
	"contratto":            fieldContract,
	"contract":             fieldContract,
}

// SplitDraft maps a labelled document onto draft fields.
// Lines such as "## Responsabilità" or "Sede: Milano" open a section; text before the
// first label, or the whole text when there is none, becomes the raw draft.
func SplitDraft(text string) types.Draft {
	var sections [fieldCount][]string
	current := fieldRaw

	for _, line := range strings.Split(text, "\n") {
		if field, rest, ok := sectionHeading(line); ok {
			current = field
			if rest != "" {
				sections[current] = append(sections[current], rest)
			}
			continue
		}
		sections[current] = append(sections[current], line)
	}

	get := func(f draftField) string {
		return strings.TrimSpace(strings.Join(sections[f], "\n"))
	}
	return types.Draft{
		Raw:              get(fieldRaw),
		Title:            get(fieldTitle),
		Description:      get(fieldDescription),
		Responsibilities: get(fieldResponsibilities),
		Qualifications:   get(fieldQualifications),
		Education:        get(fieldEducation),
		Benefits:         get(fieldBenefits),
		Location:         get(fieldLocation),
		Contract:         get(fieldContract),
	}
}

// sectionHeading recognizes "# Label", "**Label**", "Label:" and "Label: value" lines.
func sectionHeading(line string) (draftField, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "- ") {
		return 0, "", false
	}

	heading := strings.HasPrefix(trimmed, "#")
	trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	trimmed = strings.TrimSpace(strings.Trim(trimmed, "*_"))

	label, rest := trimmed, ""
	if idx := strings.Index(trimmed, ":"); idx >= 0 {
		label = strings.TrimSpace(strings.Trim(trimmed[:idx], "*_"))
		rest = strings.TrimSpace(strings.Trim(trimmed[idx+1:], "*_ "))
	} else if !heading && !strings.HasPrefix(strings.TrimSpace(line), "**") {
		// A bare word on its own line is prose unless it is marked as a heading.
		return 0, "", false
	}

	field, ok := sectionLabels[strings.ToLower(label)]
	if !ok {
		return 0, "", false
	}
	return field, rest, true
}

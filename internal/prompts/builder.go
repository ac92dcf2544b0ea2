package prompts

import (
	"strings"

	"github.com/jonathan/jobad-assistant/internal/types"
)

const jobAdFile = "jobad.json"

// Output languages understood by the instruction prompt.
const (
	LanguageItalian = "Italiano"
	LanguageEnglish = "English"
)

type systemSlots struct {
	Language     string
	ToneFlags    string
	BulletRule   string
	Schema       string
	BrandSection string
}

type userField struct {
	Label     string
	Value     string
	Multiline bool
}

type userSlots struct {
	Fields []userField
}

// NormalizeLanguage maps a language choice onto LanguageItalian or LanguageEnglish.
// Empty selects Italian.
func NormalizeLanguage(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "italiano", "italian", "it":
		return LanguageItalian
	default:
		return LanguageEnglish
	}
}

// ToneFlags joins the selected tones, falling back to a neutral pair when none is selected.
func ToneFlags(tones []types.ToneTag) string {
	if len(tones) == 0 {
		return MustGet(jobAdFile, "default-tone")
	}
	parts := make([]string, len(tones))
	for i, t := range tones {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// BulletRule returns the list formatting rule.
func BulletRule(bullets bool) string {
	if bullets {
		return MustGet(jobAdFile, "bullets-on")
	}
	return MustGet(jobAdFile, "bullets-off")
}

// BuildSystemPrompt renders the instruction prompt: role, objectives, style rules,
// the output schema and the brand voice context.
func BuildSystemPrompt(brandVoice, language string, style types.StyleOptions, schema types.AdSchema) (string, error) {
	brandSection, err := renderBrandSection(brandVoice)
	if err != nil {
		return "", err
	}

	return Render(jobAdFile, "system", systemSlots{
		Language:     NormalizeLanguage(language),
		ToneFlags:    ToneFlags(style.Tones),
		BulletRule:   BulletRule(style.Bullets),
		Schema:       schema.Describe(),
		BrandSection: brandSection,
	})
}

func renderBrandSection(brandVoice string) (string, error) {
	brandVoice = strings.TrimSpace(brandVoice)
	if brandVoice == "" {
		return MustGet(jobAdFile, "brand-missing"), nil
	}
	return Render(jobAdFile, "brand-section", struct{ BrandVoice string }{brandVoice})
}

// BuildUserPrompt renders the data prompt: each draft field under its label, followed by
// the instruction not to invent missing details.
func BuildUserPrompt(draft types.Draft) (string, error) {
	d := draft.Trimmed()
	return Render(jobAdFile, "user", userSlots{
		Fields: []userField{
			{Label: "Testo grezzo (incollato)", Value: d.Raw, Multiline: true},
			{Label: "Titolo", Value: d.Title},
			{Label: "Descrizione generale (bozza)", Value: d.Description, Multiline: true},
			{Label: "Responsabilità (bozza)", Value: d.Responsibilities, Multiline: true},
			{Label: "Qualifiche (bozza)", Value: d.Qualifications, Multiline: true},
			{Label: "Livelli di studio (bozza)", Value: d.Education, Multiline: true},
			{Label: "Benefit extra (opzionali)", Value: d.Benefits, Multiline: true},
			{Label: "Sede (opzionale)", Value: d.Location},
			{Label: "Contratto (opzionale)", Value: d.Contract},
		},
	})
}

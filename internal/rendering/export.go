package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/jobad-assistant/internal/types"
)

// MissingTitle is shown in place of an empty ad title.
const MissingTitle = "(Titolo mancante)"

// Format is an export file format.
type Format string

// Export formats.
const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", &RenderError{Message: fmt.Sprintf("unknown export format %q", s)}
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// DisplayTitle returns the ad title, or MissingTitle when it is empty.
func DisplayTitle(ad *types.GeneratedAd) string {
	if ad == nil || strings.TrimSpace(ad.Title) == "" {
		return MissingTitle
	}
	return ad.Title
}

// Filename builds "annuncio_<slug>.<ext>" where the slug is the lowercase title with every
// run of characters outside [a-zA-Z0-9] replaced by a single underscore.
func Filename(title string, format Format) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "_")
	return fmt.Sprintf("annuncio_%s.%s", slug, format)
}

// Body returns the full ad text, preferring a recruiter-edited version when present.
func Body(ad *types.GeneratedAd, edited string) string {
	if strings.TrimSpace(edited) != "" {
		return edited
	}
	if ad == nil {
		return ""
	}
	return ad.FullText
}

// Render produces the export content in the given format.
func Render(ad *types.GeneratedAd, edited string, format Format) string {
	if format == FormatMarkdown {
		return Markdown(ad, edited)
	}
	return Text(ad, edited)
}

// Markdown renders the title heading, abstract and bulleted sections, the details block
// when location or contract is set, then a separator followed by the full text.
func Markdown(ad *types.GeneratedAd, edited string) string {
	if ad == nil {
		ad = types.NewGeneratedAd(types.ShapeFull)
	}

	var sections []string
	if ad.Shape == types.ShapeMinimal {
		sections = append(sections,
			"## Descrizione generale\n"+ad.GeneralDescription,
			listSection("Responsabilità", ad.Responsibilities),
			listSection("Qualifiche", ad.Qualifications),
			listSection("Livello di studio", ad.EducationLevels),
		)
	} else {
		sections = append(sections, "# "+DisplayTitle(ad))
		if ad.Abstract != "" {
			sections = append(sections, ad.Abstract)
		}
		sections = append(sections,
			listSection("Responsabilità", ad.Responsibilities),
			listSection("Qualifiche", ad.Qualifications),
			listSection("Livelli di studio", ad.EducationLevels),
		)
		if len(ad.Benefits) > 0 {
			sections = append(sections, listSection("Benefit", ad.Benefits))
		}
		if details := detailsSection(ad.Details); details != "" {
			sections = append(sections, details)
		}
	}

	md := strings.Join(sections, "\n\n")
	body := Body(ad, edited)
	if ad.Shape == types.ShapeMinimal && body == "" {
		return md + "\n"
	}
	return md + "\n\n---\n\n" + body
}

// Text renders the plain-text export: the full ad text, or for the minimal shape
// (which has no full text) the description followed by the lists.
func Text(ad *types.GeneratedAd, edited string) string {
	if body := Body(ad, edited); body != "" {
		return body
	}
	if ad == nil || ad.Shape != types.ShapeMinimal {
		return ""
	}

	parts := []string{ad.GeneralDescription}
	for _, s := range []struct {
		title string
		items []string
	}{
		{"Responsabilità", ad.Responsibilities},
		{"Qualifiche", ad.Qualifications},
		{"Livello di studio", ad.EducationLevels},
	} {
		lines := []string{s.title + ":"}
		for _, item := range s.items {
			lines = append(lines, "- "+item)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// WriteExport writes content to path, creating parent directories as needed.
func WriteExport(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &RenderError{Message: "failed to create output directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return nil
}

func listSection(title string, items []string) string {
	var sb strings.Builder
	sb.WriteString("## ")
	sb.WriteString(title)
	for _, item := range items {
		sb.WriteString("\n- ")
		sb.WriteString(item)
	}
	return sb.String()
}

func detailsSection(d types.Details) string {
	if d.Location == "" && d.Contract == "" {
		return ""
	}
	lines := []string{"## Dettagli"}
	if d.Location != "" {
		lines = append(lines, "- **Sede:** "+d.Location)
	}
	if d.Contract != "" {
		lines = append(lines, "- **Contratto:** "+d.Contract)
	}
	return strings.Join(lines, "\n")
}

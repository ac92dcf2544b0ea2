// Package observability provides structured logging setup and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/jobad-assistant/internal/rendering"
	"github.com/jonathan/jobad-assistant/internal/types"
)

var (
	colorPrimary = lipgloss.Color("#2175D9")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSection = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Underline(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) println(s string) {
	fmt.Fprintln(p.out, s)
}

// PrintAd outputs a human-readable view of a generated ad.
func (p *Printer) PrintAd(ad *types.GeneratedAd) {
	if ad == nil {
		return
	}
	p.println(styleSuccess.Render("Annuncio generato ✔"))

	if ad.Shape == types.ShapeMinimal {
		p.printSection("Descrizione generale", ad.GeneralDescription)
		p.printList("Responsabilità", ad.Responsibilities)
		p.printList("Qualifiche", ad.Qualifications)
		p.printList("Livello di studio", ad.EducationLevels)
		return
	}

	p.println(styleTitle.Render(rendering.DisplayTitle(ad)))
	if ad.Abstract != "" {
		p.println(ad.Abstract)
	}
	p.printList("Responsabilità", ad.Responsibilities)
	p.printList("Qualifiche", ad.Qualifications)
	p.printList("Livelli di studio", ad.EducationLevels)
	if len(ad.Benefits) > 0 {
		p.printList("Benefit", ad.Benefits)
	}
	if ad.Details.Location != "" || ad.Details.Contract != "" {
		p.printSection("Dettagli", fmt.Sprintf("Sede: %s\nContratto: %s", ad.Details.Location, ad.Details.Contract))
	}
	if ad.FullText != "" {
		p.println("")
		p.println(styleSection.Render("Annuncio completo"))
		p.println(styleBox.Render(ad.FullText))
	}
}

// PrintRaw outputs an unparsed model reply with the fallback notice.
func (p *Printer) PrintRaw(raw string) {
	p.PrintWarning("La risposta non era JSON valido. Mostro il testo grezzo qui sotto.")
	p.println(styleBox.Render(raw))
}

// PrintWarning outputs a highlighted warning line.
func (p *Printer) PrintWarning(msg string) {
	p.println(styleWarning.Render("⚠ " + msg))
}

// PrintError outputs a highlighted error line.
func (p *Printer) PrintError(msg string) {
	p.println(styleError.Render("✖ " + msg))
}

// PrintNote outputs a muted informational line.
func (p *Printer) PrintNote(msg string) {
	p.println(styleMuted.Render(msg))
}

func (p *Printer) printSection(title, body string) {
	p.println("")
	p.println(styleSection.Render(title))
	if strings.TrimSpace(body) != "" {
		p.println(body)
	}
}

func (p *Printer) printList(title string, items []string) {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  • " + item
	}
	p.printSection(title, strings.Join(lines, "\n"))
}

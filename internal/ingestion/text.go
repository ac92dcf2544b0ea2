// Package ingestion turns recruiter-supplied documents into draft text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪◦‣–]\s*`)
)

// CleanText normalizes line endings, whitespace and bullet glyphs while keeping
// headings, list items and paragraph breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Word and PDF exports use typographic bullets; the model reads plain "- " items.
	if isBulletLine(trimmed) {
		trimmed = "- " + strings.TrimSpace(bulletGlyph.ReplaceAllString(trimmed, ""))
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	content := innerSpace.ReplaceAllString(trimmed, " ")
	if indent > 0 && strings.HasPrefix(content, "- ") {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return bulletGlyph.MatchString(line) && !strings.HasPrefix(line, "- ")
}

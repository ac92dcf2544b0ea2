package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	result := CleanText("# Addetto magazzino\n## Responsabilità\nCarico merci")

	assert.Equal(t, "# Addetto magazzino\n## Responsabilità\nCarico merci", result)
}

func TestCleanText_NormalizesBulletGlyphs(t *testing.T) {
	input := "• Carico merci\n·  Scarico\n– Inventario\n- Già normalizzato\n* Asterisco"
	result := CleanText(input)

	assert.Equal(t, "- Carico merci\n- Scarico\n- Inventario\n- Già normalizzato\n* Asterisco", result)
}

func TestCleanText_KeepsNestedBulletIndent(t *testing.T) {
	result := CleanText("- Principale\n  - Secondario")
	assert.Equal(t, "- Principale\n  - Secondario", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Riga    con\t\tspazi multipli")
	assert.Equal(t, "Riga con spazi multipli", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Riga 1\n\n\n\n\nRiga 2")
	assert.Equal(t, "Riga 1\n\nRiga 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Riga 1\r\nRiga 2\rRiga 3\nRiga 4")
	assert.Equal(t, "Riga 1\nRiga 2\nRiga 3\nRiga 4", result)
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Contenuto   con   spazi\n\n\nRighe   vuote"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Sede di Forlì 🚀 con caffè")
	assert.Equal(t, "Sede di Forlì 🚀 con caffè", result)
}

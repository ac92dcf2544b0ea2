package ingestion

import (
	"testing"

	"github.com/jonathan/jobad-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSplitDraft_MarkdownHeadings(t *testing.T) {
	text := "Nota interna per il recruiter.\n\n" +
		"# Titolo\nAddetto magazzino\n\n" +
		"## Descrizione generale\nAzienda logistica in crescita.\n\n" +
		"## Responsabilità\n- Carico merci\n- Scarico merci\n\n" +
		"## Requisiti\n- Patentino mulettista\n\n" +
		"## Livelli di studio\nDiploma\n\n" +
		"## Benefit\nBuoni pasto\n\n" +
		"Sede: Milano\n" +
		"**Contratto:** Tempo indeterminato\n"

	draft := SplitDraft(text)

	assert.Equal(t, types.Draft{
		Raw:              "Nota interna per il recruiter.",
		Title:            "Addetto magazzino",
		Description:      "Azienda logistica in crescita.",
		Responsibilities: "- Carico merci\n- Scarico merci",
		Qualifications:   "- Patentino mulettista",
		Education:        "Diploma",
		Benefits:         "Buoni pasto",
		Location:         "Milano",
		Contract:         "Tempo indeterminato",
	}, draft)
}

func TestSplitDraft_NoLabelsIsRaw(t *testing.T) {
	text := "Cerchiamo un addetto al magazzino per turni diurni.\nNota: esperienza gradita."

	draft := SplitDraft(text)

	assert.Equal(t, text, draft.Raw)
	assert.Empty(t, draft.Title)
	assert.True(t, draft.HasContent())
}

func TestSplitDraft_BoldHeading(t *testing.T) {
	draft := SplitDraft("**Qualifiche**\nPatente B")
	assert.Equal(t, "Patente B", draft.Qualifications)
	assert.Empty(t, draft.Raw)
}

func TestSplitDraft_BareWordIsProse(t *testing.T) {
	draft := SplitDraft("Benefit\nnessuno")
	assert.Equal(t, "Benefit\nnessuno", draft.Raw)
	assert.Empty(t, draft.Benefits)
}

func TestSplitDraft_BulletIsNotHeading(t *testing.T) {
	draft := SplitDraft("## Responsabilità\n- Sede: gestione del magazzino")
	assert.Equal(t, "- Sede: gestione del magazzino", draft.Responsibilities)
	assert.Empty(t, draft.Location)
}

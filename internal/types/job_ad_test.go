//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_HasContent(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  bool
	}{
		{name: "empty draft", draft: Draft{}, want: false},
		{name: "whitespace only", draft: Draft{Raw: "  \n\t", Title: " "}, want: false},
		{name: "metadata only", draft: Draft{Location: "Milano", Contract: "Tempo indeterminato"}, want: false},
		{name: "raw blob", draft: Draft{Raw: "Cerchiamo un magazziniere"}, want: true},
		{name: "title only", draft: Draft{Title: "Addetto magazzino"}, want: true},
		{name: "benefits only", draft: Draft{Benefits: "Ticket"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.HasContent())
		})
	}
}

func TestDraft_Trimmed(t *testing.T) {
	d := Draft{Title: "  Addetto  ", Location: "\tMilano\n"}.Trimmed()

	assert.Equal(t, "Addetto", d.Title)
	assert.Equal(t, "Milano", d.Location)
}

func TestNewGeneratedAd_ListsNeverNil(t *testing.T) {
	ad := NewGeneratedAd("")

	assert.Equal(t, ShapeFull, ad.Shape)
	assert.NotNil(t, ad.Responsibilities)
	assert.NotNil(t, ad.Qualifications)
	assert.NotNil(t, ad.EducationLevels)
	assert.NotNil(t, ad.Benefits)
}

func TestGeneratedAd_Backfill(t *testing.T) {
	t.Run("fills empty details", func(t *testing.T) {
		ad := NewGeneratedAd(ShapeFull)
		ad.Backfill("Milano", "Tempo indeterminato")

		assert.Equal(t, "Milano", ad.Details.Location)
		assert.Equal(t, "Tempo indeterminato", ad.Details.Contract)
	})

	t.Run("never overwrites model values", func(t *testing.T) {
		ad := NewGeneratedAd(ShapeFull)
		ad.Details = Details{Location: "Torino", Contract: "Somministrazione"}
		ad.Backfill("Milano", "Tempo indeterminato")

		assert.Equal(t, "Torino", ad.Details.Location)
		assert.Equal(t, "Somministrazione", ad.Details.Contract)
	})

	t.Run("blank user values are ignored", func(t *testing.T) {
		ad := NewGeneratedAd(ShapeFull)
		ad.Backfill("  ", "")

		assert.Empty(t, ad.Details.Location)
		assert.Empty(t, ad.Details.Contract)
	})

	t.Run("minimal shape has no details", func(t *testing.T) {
		ad := NewGeneratedAd(ShapeMinimal)
		ad.Backfill("Milano", "Tempo indeterminato")

		assert.Empty(t, ad.Details.Location)
	})
}

func TestGeneratedAd_MarshalJSON_Full(t *testing.T) {
	ad := NewGeneratedAd(ShapeFull)
	ad.Title = "Addetto magazzino"
	ad.Responsibilities = []string{"Carico merci"}

	data, err := json.Marshal(ad)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "Addetto magazzino", decoded[KeyTitle])
	assert.Equal(t, []any{"Carico merci"}, decoded[KeyResponsibilities])
	assert.Equal(t, []any{}, decoded[KeyBenefits])
	assert.Equal(t, map[string]any{KeyLocation: "", KeyContract: ""}, decoded[KeyDetails])
	assert.Contains(t, decoded, KeyFullText)
	assert.NotContains(t, decoded, KeyGeneralDescription)
}

func TestGeneratedAd_MarshalJSON_Minimal(t *testing.T) {
	ad := NewGeneratedAd(ShapeMinimal)
	ad.GeneralDescription = "Ruolo operativo"

	data, err := json.Marshal(ad)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Len(t, decoded, 4)
	assert.Equal(t, "Ruolo operativo", decoded[KeyGeneralDescription])
	assert.Equal(t, []any{}, decoded[KeyEducationLevel])
	assert.NotContains(t, decoded, KeyTitle)
}

func TestDraft_Merge(t *testing.T) {
	typed := Draft{Raw: "Note del recruiter", Title: "Titolo digitato"}
	uploaded := Draft{Raw: "Testo del file", Title: "Titolo file", Benefits: "Mensa"}

	merged := typed.Merge(uploaded)

	assert.Equal(t, "Note del recruiter\n\nTesto del file", merged.Raw)
	assert.Equal(t, "Titolo digitato", merged.Title)
	assert.Equal(t, "Mensa", merged.Benefits)
	assert.Equal(t, "Testo del file", Draft{}.Merge(uploaded).Raw)
	assert.Equal(t, "Note del recruiter", typed.Merge(Draft{Raw: "  "}).Raw)
}

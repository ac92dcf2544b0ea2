package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdShape(t *testing.T) {
	tests := []struct {
		in      string
		want    AdShape
		wantErr bool
	}{
		{"", ShapeFull, false},
		{"full", ShapeFull, false},
		{" Minimal ", ShapeMinimal, false},
		{"compact", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAdShape(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchemaFor_FieldOrder(t *testing.T) {
	names := func(s AdSchema) []string {
		out := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			out[i] = f.Name
		}
		return out
	}

	assert.Equal(t,
		[]string{"titolo", "abstract", "responsabilita", "qualifiche", "livelli_studio", "benefit", "dettagli", "annuncio_completo"},
		names(SchemaFor(ShapeFull)))
	assert.Equal(t,
		[]string{"descrizione_generale", "responsabilita", "qualifiche", "livello_studio"},
		names(SchemaFor(ShapeMinimal)))
}

func TestAdSchema_Field(t *testing.T) {
	details, ok := SchemaFor(ShapeFull).Field(KeyDetails)
	require.True(t, ok)
	assert.Equal(t, FieldObject, details.Type)
	assert.Len(t, details.Fields, 2)

	_, ok = SchemaFor(ShapeMinimal).Field(KeyTitle)
	assert.False(t, ok)
}

func TestAdSchema_Describe(t *testing.T) {
	out := SchemaFor(ShapeFull).Describe()

	assert.Contains(t, out, `"titolo": string,`)
	assert.Contains(t, out, `"responsabilita": [string, ...],`)
	assert.Contains(t, out, `"dettagli": {"sede": string, "contratto": string},`)
	assert.Contains(t, out, `"benefit": [string, ...],  // può essere vuoto`)
	assert.Contains(t, out, `"annuncio_completo": string  // testo pronto alla pubblicazione`)
	assert.True(t, out[0] == '{' && out[len(out)-1] == '}')
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    StyleOptions
		wantErr bool
	}{
		{name: "defaults", opts: DefaultStyleOptions(), wantErr: false},
		{name: "no tones", opts: StyleOptions{}, wantErr: false},
		{name: "tag with apostrophe", opts: StyleOptions{Tones: []ToneTag{ToneActionOriented}}, wantErr: false},
		{name: "unknown tag", opts: StyleOptions{Tones: []ToneTag{ToneClear, "aggressivo"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyleOptions_ValidateConcurrent(t *testing.T) {
	valid := DefaultStyleOptions()
	invalid := StyleOptions{Tones: []ToneTag{"aggressivo"}}

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- valid.Validate()
		}()
		go func() {
			defer wg.Done()
			if invalid.Validate() == nil {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	require.NotNil(t, styleValidate)
}

func TestParseToneTags(t *testing.T) {
	tags, err := ParseToneTags([]string{"chiaro", " ", "orientato all'azione"})
	require.NoError(t, err)
	assert.Equal(t, []ToneTag{ToneClear, ToneActionOriented}, tags)

	_, err = ParseToneTags([]string{"sarcastico"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sarcastico")
}

func TestToneTags_Vocabulary(t *testing.T) {
	tags := ToneTags()
	assert.Len(t, tags, 8)
	for _, tag := range tags {
		assert.True(t, IsKnownTone(tag))
	}
	assert.False(t, IsKnownTone("neutro"))
}

func TestParseAdShape_Style(t *testing.T) {
	shape, err := ParseAdShape("")
	require.NoError(t, err)
	assert.Equal(t, ShapeFull, shape)

	shape, err = ParseAdShape(" Minimal ")
	require.NoError(t, err)
	assert.Equal(t, ShapeMinimal, shape)

	_, err = ParseAdShape("v3")
	assert.Error(t, err)
}

func TestAdSchema_Describe_Style(t *testing.T) {
	full := SchemaFor(ShapeFull).Describe()

	assert.Contains(t, full, `"titolo": string,`)
	assert.Contains(t, full, `"responsabilita": [string, ...],`)
	assert.Contains(t, full, `"dettagli": {"sede": string, "contratto": string},`)
	assert.Contains(t, full, `"annuncio_completo": string  // testo pronto alla pubblicazione`)
	assert.True(t, full[0] == '{' && full[len(full)-1] == '}')

	minimal := SchemaFor(ShapeMinimal).Describe()
	assert.Contains(t, minimal, `"descrizione_generale": string`)
	assert.Contains(t, minimal, `"livello_studio": [string, ...]`)
	assert.NotContains(t, minimal, "titolo")
}

func TestAdSchema_Field_Style(t *testing.T) {
	field, ok := SchemaFor(ShapeFull).Field(KeyDetails)
	require.True(t, ok)
	assert.Equal(t, FieldObject, field.Type)
	assert.Len(t, field.Fields, 2)

	_, ok = SchemaFor(ShapeMinimal).Field(KeyBenefits)
	assert.False(t, ok)
}

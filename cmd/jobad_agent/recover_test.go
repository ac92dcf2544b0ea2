package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobad-assistant/internal/parsing"
)

func writeReply(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reply.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRecover_PrintsNormalizedRecord(t *testing.T) {
	withEnv(t, map[string]string{})
	path := writeReply(t, "Ecco l'annuncio:\n"+adJSON+"\n")

	stdout, _, err := execute(t, nil, "recover", "--in", path)

	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Equal(t, "Addetto magazzino", record["titolo"])
	assert.Equal(t, []any{"Carico merci"}, record["responsabilita"])
	assert.Equal(t, []any{}, record["benefit"])
}

func TestRecover_Stdin(t *testing.T) {
	withEnv(t, map[string]string{})
	reply := `{"descrizione_generale":"Ruolo in magazzino","responsabilita":["- Carico","- Carico"],"qualifiche":[],"livello_studio":["Diploma"],"annuncio_completo":"x"}`

	stdout, _, err := execute(t, strings.NewReader(reply), "recover", "--in", "-", "--schema", "minimal")

	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Equal(t, "Ruolo in magazzino", record["descrizione_generale"])
	assert.Equal(t, []any{"Carico"}, record["responsabilita"])
	assert.NotContains(t, record, "titolo")
}

func TestRecover_SchemaWarningsGoToStderr(t *testing.T) {
	withEnv(t, map[string]string{})
	path := writeReply(t, `{"titolo":"Solo titolo"}`)

	stdout, stderr, err := execute(t, nil, "recover", "--in", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, `"titolo": "Solo titolo"`)
	assert.Contains(t, stderr, "annuncio_completo")
}

func TestRecover_NoRecord(t *testing.T) {
	withEnv(t, map[string]string{})
	path := writeReply(t, "Mi dispiace, non posso aiutarti.")

	stdout, _, err := execute(t, nil, "recover", "--in", path)

	require.ErrorIs(t, err, parsing.ErrNoRecord)
	assert.Empty(t, stdout)
}

func TestRecover_RequiresInput(t *testing.T) {
	withEnv(t, map[string]string{})

	_, _, err := execute(t, nil, "recover")

	assert.Error(t, err)
}

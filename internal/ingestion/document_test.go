package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        Format
		wantErr     bool
	}{
		{"txt extension", "bozza.txt", "", FormatText, false},
		{"markdown extension", "Bozza.MD", "", FormatMarkdown, false},
		{"pdf extension", "annuncio.pdf", "", FormatPDF, false},
		{"docx extension", "annuncio.docx", "", FormatDOCX, false},
		{"content type fallback", "upload", "application/pdf", FormatPDF, false},
		{"content type with params", "upload", "text/plain; charset=utf-8", FormatText, false},
		{"docx content type", "blob", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatDOCX, false},
		{"legacy doc", "annuncio.doc", "application/msword", "", true},
		{"unknown", "image.png", "image/png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, tt.contentType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Text(t *testing.T) {
	doc, err := Parse([]byte("Cerchiamo   un magazziniere\r\n\r\n\r\n• Carico"), "bozza.txt", FormatText)
	require.NoError(t, err)

	assert.Equal(t, "Cerchiamo un magazziniere\n\n- Carico", doc.Text)
	assert.Equal(t, "bozza.txt", doc.Metadata.Source)
	assert.Equal(t, FormatText, doc.Metadata.Format)
	assert.Equal(t, computeHash(doc.Text), doc.Metadata.Hash)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), "x.rtf", Format("rtf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_TooLarge(t *testing.T) {
	_, err := Parse(make([]byte, MaxDocumentBytes+1), "big.txt", FormatText)
	assert.Error(t, err)
}

func TestParse_InvalidPDF(t *testing.T) {
	_, err := Parse([]byte("not a pdf"), "bozza.pdf", FormatPDF)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read pdf")
}

func TestParse_InvalidDOCX(t *testing.T) {
	_, err := Parse([]byte("not a zip"), "bozza.docx", FormatDOCX)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse docx")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bozza.md")
	require.NoError(t, os.WriteFile(path, []byte("# Titolo\nAddetto magazzino"), 0o644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Titolo\nAddetto magazzino", doc.Text)
	assert.Equal(t, FormatMarkdown, doc.Metadata.Format)
	assert.Equal(t, "bozza.md", doc.Metadata.Source)
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadFile_Unsupported(t *testing.T) {
	_, err := ReadFile("annuncio.odt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDocxPlainText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Addetto magazzino</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Sede:</w:t><w:tab/><w:t>Milano &amp; provincia</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Riga</w:t><w:br/><w:t>a capo</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "Addetto magazzino\nSede: Milano & provincia\nRiga\na capo\n", docxPlainText(xml))
}

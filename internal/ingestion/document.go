package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported draft document type.
type Format string

// Supported draft formats.
const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// MaxDocumentBytes bounds the size of an uploaded or read draft document.
const MaxDocumentBytes = 10 << 20

// ErrUnsupportedFormat is returned for documents that are not txt, md, pdf or docx.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is a draft document reduced to clean text.
type Document struct {
	Text     string
	Metadata *Metadata
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>`)
	docxTab          = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat picks the document format from the file extension, then the content type.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "text/plain":
		return FormatText, nil
	case "text/markdown":
		return FormatMarkdown, nil
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

// Parse extracts and cleans the text of a document held in memory.
func Parse(data []byte, source string, format Format) (*Document, error) {
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("document %s exceeds %d bytes", source, MaxDocumentBytes)
	}

	var (
		text  string
		pages int
		err   error
	)
	switch format {
	case FormatText, FormatMarkdown:
		text = string(data)
	case FormatPDF:
		text, pages, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDocxText(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	cleaned := CleanText(text)
	meta := NewMetadata(cleaned, source, format)
	meta.Pages = pages
	return &Document{Text: cleaned, Metadata: meta}, nil
}

// ReadFile reads a draft document from disk.
func ReadFile(path string) (*Document, error) {
	format, err := DetectFormat(path, "")
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(data, filepath.Base(path), format)
}

func extractPDFText(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), numPages, nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText reduces WordprocessingML to text, one line per paragraph.
func docxPlainText(xml string) string {
	text := docxParagraphEnd.ReplaceAllString(xml, "\n")
	text = docxTab.ReplaceAllString(text, " ")
	text = xmlTag.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

package config

import (
	"context"
	_ "embed"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/jobad-assistant/internal/fetch"
)

//go:embed brand_voice_fallback.txt
var fallbackBrandVoice string

// MaxBrandVoiceChars caps brand voice text pulled from a web page.
const MaxBrandVoiceChars = 6000

// BrandSource names where the resolved brand voice came from.
type BrandSource string

// Brand voice sources in resolution order.
const (
	BrandFromText BrandSource = "text"
	BrandFromFile BrandSource = "file"
	BrandFromURL  BrandSource = "url"
	BrandFallback BrandSource = "fallback"
)

// BrandVoice is the tone-of-voice text folded into every instruction prompt.
// It is resolved once at startup and read-only afterwards.
type BrandVoice struct {
	Text   string
	Source BrandSource
	Origin string // File path or URL, when applicable
}

// PageFetcher retrieves a page and its extracted text.
type PageFetcher interface {
	Page(ctx context.Context, url string) (*fetch.Result, error)
}

// FallbackBrandVoice returns the built-in brand voice text.
func FallbackBrandVoice() string {
	return strings.TrimSpace(fallbackBrandVoice)
}

// ResolveBrandVoice picks the first usable source: inline text, file, URL, then the
// built-in fallback. Failing sources are logged and skipped.
func (c *Config) ResolveBrandVoice(ctx context.Context, fetcher PageFetcher, logger *slog.Logger) BrandVoice {
	if logger == nil {
		logger = slog.Default()
	}

	if text := strings.TrimSpace(c.BrandVoice); text != "" {
		return BrandVoice{Text: text, Source: BrandFromText}
	}

	if c.BrandVoiceFile != "" {
		data, err := os.ReadFile(c.BrandVoiceFile)
		switch {
		case err != nil:
			logger.Warn("brand voice file unreadable, trying next source", "path", c.BrandVoiceFile, "error", err)
		case strings.TrimSpace(string(data)) == "":
			logger.Warn("brand voice file is empty, trying next source", "path", c.BrandVoiceFile)
		default:
			return BrandVoice{Text: strings.TrimSpace(string(data)), Source: BrandFromFile, Origin: c.BrandVoiceFile}
		}
	}

	if c.BrandVoiceURL != "" && fetcher != nil {
		result, err := fetcher.Page(ctx, c.BrandVoiceURL)
		switch {
		case err != nil:
			logger.Warn("brand voice page unavailable, trying next source", "url", c.BrandVoiceURL, "error", err)
		case strings.TrimSpace(result.Text) == "":
			logger.Warn("brand voice page has no text, trying next source", "url", c.BrandVoiceURL)
		default:
			return BrandVoice{Text: truncateRunes(result.Text, MaxBrandVoiceChars), Source: BrandFromURL, Origin: c.BrandVoiceURL}
		}
	}

	return BrandVoice{Text: FallbackBrandVoice(), Source: BrandFallback}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit]))
}

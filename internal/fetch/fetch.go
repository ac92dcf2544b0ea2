// Package fetch retrieves web pages and reduces them to readable text.
// It is used to pull the brand voice from a company page.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobAdAssistant/1.0)"

// DefaultMaxBytes bounds how much of a response body is read.
const DefaultMaxBytes = 2 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Selectors []string // Content selectors tried in order before falling back to <body>
}

// DefaultOptions returns the options used for brand pages.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
		Selectors: BrandPageSelectors(),
	}
}

// Fetcher downloads pages over HTTP.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// New creates a Fetcher. Zero-valued options take their defaults.
func New(opts *Options) *Fetcher {
	merged := *DefaultOptions()
	if opts != nil {
		if opts.Timeout > 0 {
			merged.Timeout = opts.Timeout
		}
		if opts.UserAgent != "" {
			merged.UserAgent = opts.UserAgent
		}
		if opts.MaxBytes > 0 {
			merged.MaxBytes = opts.MaxBytes
		}
		if len(opts.Selectors) > 0 {
			merged.Selectors = opts.Selectors
		}
	}
	return &Fetcher{
		client: &http.Client{Timeout: merged.Timeout},
		opts:   merged,
	}
}

// Page retrieves a URL and extracts its main text.
// On a non-2xx status the partial Result is returned together with the error.
func (f *Fetcher) Page(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	text, err := ExtractMainText(result.HTML, f.opts.Selectors)
	if err != nil {
		return result, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	result.Text = text
	return result, nil
}

// ExtractMainText parses HTML and returns the text of the first matching content
// selector, or of <body> when none match. Page chrome (navigation, footers, scripts,
// cookie banners) and any extra noiseSelectors are removed first.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, form, iframe, .cookie-banner, #cookie-banner, .popup, .sidebar").Remove()
	if noise := strings.Join(noiseSelectors, ", "); noise != "" {
		doc.Find(noise).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	// Block elements become separate lines so paragraphs survive extraction.
	content.Find("p, li, h1, h2, h3, h4, h5, h6, br, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(content.Text()), nil
}

// BrandPageSelectors returns selectors for company pages (about, values, culture).
func BrandPageSelectors() []string {
	return []string{
		".about-content",
		".values-content",
		".culture-content",
		"main",
		"article",
		".content",
		"#content",
	}
}

// cleanWhitespace trims each line, collapses inner runs of spaces and drops blank lines.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// Package parsing recovers structured job ad records from free-form model replies.
package parsing

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Record is a JSON object recovered from a model reply.
type Record map[string]any

var (
	// trailingObject matches from the first '{' through a final '}' that ends the text.
	trailingObject = regexp.MustCompile(`\{[\s\S]*\}\s*$`)
	// danglingComma matches a comma immediately before a closing brace or bracket.
	danglingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

const fence = "```"

// RecoverStructured makes a best-effort attempt at turning a model reply into a Record.
//
// Stages, each tried only when the previous one did not succeed:
//  1. blank input yields no record
//  2. a surrounding code fence (optionally tagged json) is stripped
//  3. the trailing {...} object is isolated from any leading prose
//  4. the candidate is parsed strictly
//  5. commas right before '}' or ']' are removed and the parse is retried once
//
// The second return value is false when no JSON object could be recovered.
// It never panics; a failed recovery is an expected outcome, not an error.
func RecoverStructured(raw string) (Record, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	text := stripFence(raw)

	candidate := text
	if m := trailingObject.FindString(text); m != "" {
		candidate = m
	}

	if record, ok := parseObject(candidate); ok {
		return record, true
	}

	repaired := danglingComma.ReplaceAllString(candidate, "$1")
	if repaired == candidate {
		return nil, false
	}
	return parseObject(repaired)
}

// stripFence removes a leading ``` (or ```json) marker and a trailing ``` marker
// when both are present. Otherwise the text is returned unchanged.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if len(text) < 2*len(fence) || !strings.HasPrefix(text, fence) || !strings.HasSuffix(text, fence) {
		return raw
	}

	inner := text[len(fence) : len(text)-len(fence)]
	if len(inner) >= 4 && strings.EqualFold(inner[:4], "json") {
		inner = inner[4:]
	}
	return strings.TrimSpace(inner)
}

// parseObject strictly decodes text as a single JSON object.
func parseObject(text string) (Record, bool) {
	var record Record
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, false
	}
	if record == nil {
		// Literal null decodes without error.
		return nil, false
	}
	return record, true
}

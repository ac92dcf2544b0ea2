package parsing

import (
	"regexp"
	"strings"
)

// listMarker matches a bullet or enumeration prefix the model sometimes leaves on list items:
// "- ", "* ", "• ", "1. ", "2) ".
var listMarker = regexp.MustCompile(`^(?:[-*•·▪◦‣–]|\d{1,2}[.)])(?:\s+|$)`)

// NormalizeListItem trims an item and removes a leading list marker.
// Internal line breaks are folded into single spaces.
func NormalizeListItem(item string) string {
	item = strings.TrimSpace(item)
	item = listMarker.ReplaceAllString(item, "")
	return strings.Join(strings.Fields(item), " ")
}

// NormalizeList applies NormalizeListItem and drops items left empty.
// Exact duplicates are removed, keeping the first occurrence.
func NormalizeList(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = NormalizeListItem(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

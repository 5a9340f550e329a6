package search

import (
	"strings"

	"ai-note-assistant/pkg/store"
)

// ParseQuery extracts tag filters from a raw search string
// Supported:
// #<tag> OR /tag:<tag> -> Filter by tag
// <text> -> Remaining text is the ranked search query
func ParseQuery(raw string) store.QueryFilter {
	filter := store.QueryFilter{}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		if strings.HasPrefix(lowerPart, "/tag:") {
			filter.Tag = strings.TrimPrefix(part, part[:len("/tag:")])
		} else if strings.HasPrefix(part, "#") && len(part) > 1 {
			filter.Tag = strings.TrimPrefix(part, "#")
		} else {
			cleanParts = append(cleanParts, part)
		}
	}

	filter.Text = strings.Join(cleanParts, " ")
	return filter
}

// Package correction recognises follow-up messages that change the tags of the
// note that was just saved.
package correction

import (
	"regexp"
	"strings"
)

// Patterns are tried in order, first match wins. Each captures the new tag list.
var patterns = []*regexp.Regexp{
	// "cambia la etiqueta a X", "cámbiale las etiquetas por X"
	regexp.MustCompile(`(?i)\bc[aá]mbia(?:r|le)?\s+(?:la\s+|las\s+)?(?:etiquetas?|tags?)\s+(?:a|por)\s+(.+)$`),
	// "debería ser X", "deberían ser X"
	regexp.MustCompile(`(?i)\b(?:deber[ií]an?|deben?)\s+ser\s+(.+)$`),
	// "etiqueta: X", "la etiqueta es X", "ponle etiquetas = X"
	regexp.MustCompile(`(?i)^\s*(?:(?:pon|ponle|usa|agrega|añade)\s+)?(?:la\s+|las\s+)?(?:etiquetas?|tags?)\s*(?::|=|\s(?:es|son)\s)\s*(.+)$`),
	// "categoría: X", "la categoría es X", "cambia la categoría por X"
	regexp.MustCompile(`(?i)\bcategor[ií]as?\s*(?::|=|\s(?:es|son|a|por)\s)\s*(.+)$`),
	// "ponlo en la categoría X", "muévela a la categoría X"
	regexp.MustCompile(`(?i)\b(?:pon|m[uú][eé]ve|gu[aá]rda|mete)(?:lo|la)?\s+(?:en|a)\s+(?:la\s+)?categor[ií]a\s+(.+)$`),
}

// Answers to "are these tags right?" that read like a tag list.
var confirmations = map[string]bool{
	"bien": true, "está bien": true, "están bien": true, "esta bien": true, "estan bien": true,
	"correcta": true, "correctas": true, "correcto": true, "correctos": true,
	"perfecta": true, "perfectas": true, "perfecto": true, "perfectos": true,
	"ok": true, "okay": true, "vale": true, "sí": true, "si": true,
}

var separators = regexp.MustCompile(`(?i)\s*,\s*|\s+y\s+`)

const trimSet = " \t.!?¡¿\"'«»"

// Parse extracts the requested tags from text. ok is false when text is not a tag
// correction, letting the caller classify it normally.
func Parse(text string) (tags []string, ok bool) {
	text = strings.TrimSpace(text)
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		tags = splitTags(m[1])
		if len(tags) == 0 || onlyConfirmations(tags) {
			return nil, false
		}
		return tags, true
	}
	return nil, false
}

func splitTags(raw string) []string {
	parts := separators.Split(raw, -1)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, trimSet)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func onlyConfirmations(tags []string) bool {
	for _, t := range tags {
		if !confirmations[strings.ToLower(t)] {
			return false
		}
	}
	return true
}

// Package response renders query results and statistics as chat replies.
package response

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"ai-note-assistant/pkg/assistant/intent"
	"ai-note-assistant/pkg/store"
)

const (
	maxListed  = 5
	excerptLen = 80
)

type tierStyle struct {
	icon   string
	label  string
	header string // takes the keyword
	tip    string
}

var tierStyles = map[store.Tier]tierStyle{
	store.TierExact: {
		icon:   "🎯",
		label:  "Coincidencia exacta",
		header: "🎯 Esto es lo que encontré sobre «%s»:",
		tip:    "💡 Para ver todas las notas de un tema, pídeme las notas de una etiqueta.",
	},
	store.TierRelated: {
		icon:   "🔗",
		label:  "Relacionada",
		header: "🔗 No encontré «%s» tal cual, pero estas notas están relacionadas:",
		tip:    "💡 Son coincidencias por palabras relacionadas. Prueba con un término más concreto si no es lo que buscabas.",
	},
	store.TierFuzzy: {
		icon:   "🤏",
		label:  "Coincidencia parcial",
		header: "🤏 Solo encontré coincidencias parciales para «%s»:",
		tip:    "💡 Las coincidencias son aproximadas. Revisa la ortografía o usa otra palabra.",
	},
}

// Formatter turns store results into reply text. It holds no state, so the same
// input always renders the same text.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatResults renders the outcome of a by_tag, by_keyword or recent query.
func (f *Formatter) FormatResults(notes []store.ScoredNote, kind intent.QueryKind, parameter string) string {
	if len(notes) == 0 {
		if kind == intent.QueryByKeyword {
			return fmt.Sprintf("🔍 No encontré notas que coincidan con «%s».\n\n"+
				"💡 Prueba con:\n"+
				"• una palabra más general\n"+
				"• otra forma de decirlo\n"+
				"• pedirme tus notas recientes o las de una etiqueta", parameter)
		}
		return "📭 Aún no tienes notas guardadas. Escríbeme algo como \"anota que...\" para crear la primera."
	}

	var b strings.Builder
	b.WriteString(header(notes, kind, parameter))
	b.WriteString("\n\n")

	listed := notes
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	for i, n := range listed {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeNote(&b, i+1, n)
	}

	if extra := len(notes) - len(listed); extra > 0 {
		fmt.Fprintf(&b, "\n\n...y %d %s más.", extra, plural(extra, "nota", "notas"))
	}

	if kind == intent.QueryByKeyword {
		if style, ok := tierStyles[notes[0].Tier]; ok {
			b.WriteString("\n\n")
			b.WriteString(style.tip)
		}
	}
	return b.String()
}

// FormatStats renders a count query.
func (f *Formatter) FormatStats(stats store.Stats) string {
	if stats.Total == 0 {
		return "📭 Aún no tienes notas guardadas."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Tienes %d %s en total.", stats.Total, plural(int(stats.Total), "nota", "notas"))

	tags := make([]string, 0, len(stats.PerTag))
	for tag := range stats.PerTag {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		ci, cj := stats.PerTag[tags[i]], stats.PerTag[tags[j]]
		if ci != cj {
			return ci > cj
		}
		return tags[i] < tags[j]
	})

	if len(tags) > 0 {
		b.WriteString("\n\n🏷️ Por etiqueta:")
		for _, tag := range tags {
			fmt.Fprintf(&b, "\n• %s: %d", tag, stats.PerTag[tag])
		}
	}
	return b.String()
}

func header(notes []store.ScoredNote, kind intent.QueryKind, parameter string) string {
	switch kind {
	case intent.QueryByTag:
		return fmt.Sprintf("🏷️ Notas con la etiqueta «%s» (%d):", parameter, len(notes))
	case intent.QueryByKeyword:
		if style, ok := tierStyles[notes[0].Tier]; ok {
			return fmt.Sprintf(style.header, parameter)
		}
		return fmt.Sprintf("🔍 Notas sobre «%s»:", parameter)
	default:
		return "🕒 Tus notas más recientes:"
	}
}

func writeNote(b *strings.Builder, index int, n store.ScoredNote) {
	fmt.Fprintf(b, "%d. *%s*", index, n.Title)
	if ex := excerpt(n.Body); ex != "" {
		fmt.Fprintf(b, "\n   %s", ex)
	}
	if len(n.Tags) > 0 {
		fmt.Fprintf(b, "\n   🏷️ %s", strings.Join(n.Tags, ", "))
	}
	if n.Score > 0 {
		if style, ok := tierStyles[n.Tier]; ok {
			fmt.Fprintf(b, "\n   %s %s", style.icon, style.label)
			if len(n.MatchReasons) > 0 {
				fmt.Fprintf(b, ": %s", n.MatchReasons[0])
			}
		}
	}
}

func excerpt(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if utf8.RuneCountInString(body) <= excerptLen {
		return body
	}
	return strings.TrimSpace(string([]rune(body)[:excerptLen])) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"ai-note-assistant/pkg/store"
)

// Scores awarded per match location, strictest tier first.
const (
	exactTitleScore = 30
	exactBodyScore  = 25
	exactTagsScore  = 20

	wordTitleScore = 15
	wordBodyScore  = 12
	wordTagsScore  = 10

	synonymTitleScore = 5
	synonymTagsScore  = 4
	synonymBodyScore  = 3

	fuzzyScore = 1

	// Words must be longer than this to count as significant.
	minSignificantLen = 2
	// Fuzzy matching only looks at words longer than this, using this many leading runes.
	fuzzyPrefixLen = 4
)

// Engine ranks notes against a free-text query in three tiers: exact, synonym, fuzzy.
// A looser tier only runs when the stricter one found nothing.
type Engine struct {
	lexicon LexiconSource
}

func NewEngine(lexicon LexiconSource) *Engine {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Engine{lexicon: lexicon}
}

// haystack is a note with its searchable fields lowercased once.
type haystack struct {
	title string
	body  string
	tags  string
}

func newHaystack(n store.Note) haystack {
	return haystack{
		title: strings.ToLower(n.Title),
		body:  strings.ToLower(n.Body),
		tags:  strings.ToLower(strings.Join(n.Tags, " ")),
	}
}

// scoreFunc scores one note for a tier and explains why.
type scoreFunc func(h haystack) (int, []string)

// Search returns the notes matching query, best first. Ties keep the input order,
// which callers supply newest first.
func (e *Engine) Search(notes []store.Note, query string) []store.ScoredNote {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(notes) == 0 {
		return nil
	}

	lex := e.lexicon.Lexicon()
	words := significantWords(q, minSignificantLen, lex)
	hay := make([]haystack, len(notes))
	for i, n := range notes {
		hay[i] = newHaystack(n)
	}

	tiers := []scoreFunc{
		func(h haystack) (int, []string) { return scoreExact(h, q, words) },
		func(h haystack) (int, []string) { return scoreSynonyms(h, words, lex) },
		func(h haystack) (int, []string) { return scoreFuzzy(h, words) },
	}
	for _, score := range tiers {
		if results := rank(notes, hay, score); len(results) > 0 {
			return results
		}
	}
	return nil
}

// SignificantWords returns the lowercase query words longer than minLen that are not
// stop words, in order of first appearance.
func (e *Engine) SignificantWords(text string, minLen int) []string {
	return significantWords(strings.ToLower(text), minLen, e.lexicon.Lexicon())
}

func rank(notes []store.Note, hay []haystack, score scoreFunc) []store.ScoredNote {
	var results []store.ScoredNote
	for i, n := range notes {
		s, reasons := score(hay[i])
		if s == 0 {
			continue
		}
		results = append(results, store.ScoredNote{
			Note:         n,
			Score:        s,
			MatchReasons: reasons,
			Tier:         store.TierForScore(s),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func scoreExact(h haystack, q string, words []string) (int, []string) {
	score := 0
	var reasons []string
	if strings.Contains(h.title, q) {
		score += exactTitleScore
		reasons = append(reasons, fmt.Sprintf("el título contiene «%s»", q))
	}
	if strings.Contains(h.body, q) {
		score += exactBodyScore
		reasons = append(reasons, fmt.Sprintf("el contenido contiene «%s»", q))
	}
	if strings.Contains(h.tags, q) {
		score += exactTagsScore
		reasons = append(reasons, fmt.Sprintf("las etiquetas contienen «%s»", q))
	}
	if score > 0 {
		return score, reasons
	}

	for _, w := range words {
		if strings.Contains(h.title, w) {
			score += wordTitleScore
			reasons = append(reasons, fmt.Sprintf("«%s» en el título", w))
		}
		if strings.Contains(h.body, w) {
			score += wordBodyScore
			reasons = append(reasons, fmt.Sprintf("«%s» en el contenido", w))
		}
		if strings.Contains(h.tags, w) {
			score += wordTagsScore
			reasons = append(reasons, fmt.Sprintf("«%s» en las etiquetas", w))
		}
	}
	return score, reasons
}

func scoreSynonyms(h haystack, words []string, lex *Lexicon) (int, []string) {
	score := 0
	var reasons []string
	for _, w := range words {
		for _, term := range lex.Related(w) {
			if strings.Contains(h.title, term) {
				score += synonymTitleScore
				reasons = append(reasons, fmt.Sprintf("«%s» (relacionado con «%s») en el título", term, w))
			}
			if strings.Contains(h.tags, term) {
				score += synonymTagsScore
				reasons = append(reasons, fmt.Sprintf("«%s» (relacionado con «%s») en las etiquetas", term, w))
			}
			if strings.Contains(h.body, term) {
				score += synonymBodyScore
				reasons = append(reasons, fmt.Sprintf("«%s» (relacionado con «%s») en el contenido", term, w))
			}
		}
	}
	return score, reasons
}

func scoreFuzzy(h haystack, words []string) (int, []string) {
	score := 0
	var reasons []string
	for _, w := range words {
		if utf8.RuneCountInString(w) <= fuzzyPrefixLen {
			continue
		}
		prefix := string([]rune(w)[:fuzzyPrefixLen])
		if strings.Contains(h.title, prefix) || strings.Contains(h.body, prefix) {
			score += fuzzyScore
			reasons = append(reasons, fmt.Sprintf("coincidencia parcial con «%s»", w))
		}
	}
	return score, reasons
}

// significantWords expects text already lowercased.
func significantWords(text string, minLen int, lex *Lexicon) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= minLen || lex.IsStopWord(f) || seen[f] {
			continue
		}
		seen[f] = true
		words = append(words, f)
	}
	return words
}

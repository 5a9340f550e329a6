// Package suggest proposes tags for a new note from the tags of similar notes.
package suggest

import (
	"context"
	"sort"
	"strings"

	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/pkg/store"
)

const (
	queryWords    = 3 // leading significant words used as the lookup query
	minWordLen    = 3 // words must be longer than this
	similarNotes  = 5 // how many top matches are inspected
	minOccurrence = 2 // a tag must repeat at least this often
	maxSuggested  = 3
)

// WordExtractor picks the meaningful words out of free text.
type WordExtractor interface {
	SignificantWords(text string, minLen int) []string
}

type Suggester struct {
	notes  store.NoteStore
	words  WordExtractor
	logger logger.ILogger
}

func NewSuggester(notes store.NoteStore, words WordExtractor, log logger.ILogger) *Suggester {
	return &Suggester{notes: notes, words: words, logger: log}
}

// Suggest returns up to three tags shared by notes similar to text.
// It never fails: lookup errors yield no suggestions.
func (s *Suggester) Suggest(ctx context.Context, text string) []string {
	words := s.words.SignificantWords(text, minWordLen)
	if len(words) == 0 {
		return nil
	}
	if len(words) > queryWords {
		words = words[:queryWords]
	}
	query := strings.Join(words, " ")

	similar, err := s.notes.Query(ctx, store.QueryFilter{Text: query})
	if err != nil {
		s.logger.Warn("Suggest", "Similar note lookup failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil
	}
	if len(similar) > similarNotes {
		similar = similar[:similarNotes]
	}

	return topTags(similar)
}

type tagCount struct {
	tag   string
	count int
	first int
}

func topTags(notes []store.ScoredNote) []string {
	counts := make(map[string]*tagCount)
	order := 0
	for _, n := range notes {
		for _, tag := range n.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			tc, ok := counts[tag]
			if !ok {
				tc = &tagCount{tag: tag, first: order}
				counts[tag] = tc
				order++
			}
			tc.count++
		}
	}

	var repeated []*tagCount
	for _, tc := range counts {
		if tc.count >= minOccurrence {
			repeated = append(repeated, tc)
		}
	}
	sort.Slice(repeated, func(i, j int) bool {
		if repeated[i].count != repeated[j].count {
			return repeated[i].count > repeated[j].count
		}
		return repeated[i].first < repeated[j].first
	})
	if len(repeated) > maxSuggested {
		repeated = repeated[:maxSuggested]
	}

	tags := make([]string, len(repeated))
	for i, tc := range repeated {
		tags[i] = tc.tag
	}
	return tags
}

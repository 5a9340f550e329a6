package store

import (
	"context"
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")

// Note is a persisted note as seen by the assistant.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNote is the payload for creating a note. The store assigns id and timestamp.
type NewNote struct {
	Title string
	Body  string
	Tags  []string
}

// Tier classifies how strongly a scored note matched a query.
type Tier string

const (
	TierNone    Tier = ""
	TierExact   Tier = "exact"
	TierRelated Tier = "related"
	TierFuzzy   Tier = "fuzzy"
)

// TierForScore maps a relevance score onto its presentation tier.
func TierForScore(score int) Tier {
	switch {
	case score >= 10:
		return TierExact
	case score >= 3:
		return TierRelated
	case score > 0:
		return TierFuzzy
	default:
		return TierNone
	}
}

// ScoredNote is a note ranked against a query.
type ScoredNote struct {
	Note
	Score        int      `json:"score"`
	MatchReasons []string `json:"match_reasons,omitempty"`
	Tier         Tier     `json:"tier,omitempty"`
}

// Unscored wraps notes that were not ranked (recent, by tag).
func Unscored(notes []Note) []ScoredNote {
	out := make([]ScoredNote, len(notes))
	for i, n := range notes {
		out[i] = ScoredNote{Note: n}
	}
	return out
}

// QueryFilter narrows a note query. Empty fields match everything.
type QueryFilter struct {
	Text string
	Tag  string
}

// Stats summarises the note collection.
type Stats struct {
	Total  int64            `json:"total"`
	PerTag map[string]int64 `json:"per_tag"`
}

// NoteStore is the assistant's view of the note collection.
type NoteStore interface {
	Create(ctx context.Context, note NewNote) (string, error)
	UpdateTags(ctx context.Context, id string, tags []string) error
	// Query returns notes newest first; when filter.Text is set they are re-ranked by relevance.
	Query(ctx context.Context, filter QueryFilter) ([]ScoredNote, error)
	Count(ctx context.Context) (*Stats, error)
	ListTags(ctx context.Context) ([]string, error)
}

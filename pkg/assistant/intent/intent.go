// Package intent turns a free-text message into one of the assistant's five intents.
package intent

// Kind names an intent variant as the oracle spells it.
type Kind string

const (
	KindSaveNote      Kind = "save_note"
	KindQuery         Kind = "query"
	KindConversation  Kind = "conversation"
	KindUnclear       Kind = "unclear"
	KindTagCorrection Kind = "tag_correction"
)

// QueryKind selects which store operation answers a query.
type QueryKind string

const (
	QueryByTag     QueryKind = "by_tag"
	QueryByKeyword QueryKind = "by_keyword"
	QueryCount     QueryKind = "count"
	QueryRecent    QueryKind = "recent"
)

func (k QueryKind) valid() bool {
	switch k {
	case QueryByTag, QueryByKeyword, QueryCount, QueryRecent:
		return true
	}
	return false
}

// NeedsParameter reports whether the query is meaningless without a parameter.
func (k QueryKind) NeedsParameter() bool {
	return k == QueryByTag || k == QueryByKeyword
}

// Intent is exactly one of SaveNote, Query, Conversation, Unclear or TagCorrection.
type Intent interface {
	Kind() Kind
	isIntent()
}

type SaveNote struct {
	Title         string
	Body          string
	Tags          []string
	Confidence    float64
	SuggestedTags []string
}

type Query struct {
	Type       QueryKind
	Parameter  string
	Confidence float64
}

type Conversation struct {
	Reply      string
	Confidence float64
}

type Unclear struct {
	Question string
}

// TagCorrection asks to replace the tags of the pending note. TargetNoteID is
// filled from conversation state, never by the oracle.
type TagCorrection struct {
	TargetNoteID string
	NewTags      []string
	SourceText   string
}

func (SaveNote) Kind() Kind      { return KindSaveNote }
func (Query) Kind() Kind         { return KindQuery }
func (Conversation) Kind() Kind  { return KindConversation }
func (Unclear) Kind() Kind       { return KindUnclear }
func (TagCorrection) Kind() Kind { return KindTagCorrection }

func (SaveNote) isIntent()      {}
func (Query) isIntent()         {}
func (Conversation) isIntent()  {}
func (Unclear) isIntent()       {}
func (TagCorrection) isIntent() {}

// IsHighConfidence reports whether a classification confidence is above 0.7.
func IsHighConfidence(c float64) bool {
	return c > 0.7
}

// ConfidenceOf returns the oracle's confidence for variants that carry one.
func ConfidenceOf(in Intent) (float64, bool) {
	switch v := in.(type) {
	case SaveNote:
		return v.Confidence, true
	case Query:
		return v.Confidence, true
	case Conversation:
		return v.Confidence, true
	default:
		return 0, false
	}
}

package store

import "time"

// PendingNote is the most recently saved note whose tags the user may still correct.
type PendingNote struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// ConversationState is the short-lived dialog state kept per conversation
type ConversationState struct {
	ID string `json:"id"` // Remote party's conversation id

	// THE PENDING NOTE (saved, tags not yet confirmed)
	PendingNote           *PendingNote `json:"pending_note,omitempty"`
	AwaitingTagCorrection bool         `json:"awaiting_tag_correction"`

	// Metadata for last interaction
	LastQueryTerm string    `json:"last_query_term,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	StateIdle                  = "IDLE"
	StateAwaitingTagCorrection = "AWAITING_TAG_CORRECTION"
)

// NewConversationState returns an idle state for the given conversation.
func NewConversationState(id string) *ConversationState {
	return &ConversationState{ID: id}
}

// Status reports which dialog state the conversation is in.
func (s *ConversationState) Status() string {
	if s.AwaitingTagCorrection && s.PendingNote != nil {
		return StateAwaitingTagCorrection
	}
	return StateIdle
}

// Clone returns a deep copy so a turn can work on it without touching the stored value.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	c := *s
	if s.PendingNote != nil {
		p := *s.PendingNote
		p.Tags = append([]string(nil), s.PendingNote.Tags...)
		c.PendingNote = &p
	}
	return &c
}

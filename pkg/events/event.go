package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeNoteSaved       = "NOTE_SAVED"
	TypeNoteTagsUpdated = "NOTE_TAGS_UPDATED"
)

// BaseEvent is the generic Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }

func NewNoteSaved(noteID, title string, tags []string) BaseEvent {
	return BaseEvent{
		Type: TypeNoteSaved,
		Data: map[string]interface{}{
			"note_id": noteID,
			"title":   title,
			"tags":    tags,
		},
		OccurredAt: time.Now(),
	}
}

func NewNoteTagsUpdated(noteID, title string, tags []string) BaseEvent {
	return BaseEvent{
		Type: TypeNoteTagsUpdated,
		Data: map[string]interface{}{
			"note_id": noteID,
			"title":   title,
			"tags":    tags,
		},
		OccurredAt: time.Now(),
	}
}

package nats

import (
	"testing"
	"time"

	"ai-note-assistant/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRoundTrip(t *testing.T) {
	assert.Equal(t, "events.NOTE_SAVED", Subject(events.TypeNoteSaved))
	assert.Equal(t, events.TypeNoteSaved, EventType(Subject(events.TypeNoteSaved)))
}

func TestDecode(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	h := nats.Header{}
	h.Set("Occurred-At", at.Format(time.RFC3339Nano))

	ev, err := decode("events.NOTE_TAGS_UPDATED", h, []byte(`{"note_id":"n1","tags":["B","C"]}`))
	require.NoError(t, err)
	assert.Equal(t, events.TypeNoteTagsUpdated, ev.EventType())
	assert.Equal(t, "n1", ev.Payload()["note_id"])
	assert.True(t, at.Equal(ev.Timestamp()))

	_, err = decode("events.NOTE_SAVED", nats.Header{}, []byte(`not json`))
	assert.Error(t, err)
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/internal/repository/memory"
	"ai-note-assistant/pkg/events"
	"ai-note-assistant/pkg/search"
	"ai-note-assistant/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func newMemoryNoteService(pub EventPublisher, limit int) store.NoteStore {
	return NewNoteService(
		memory.NewRepositoryFactory(nil),
		search.NewEngine(nil),
		pub,
		limit,
		logger.NewNopLogger(),
	)
}

func TestNoteServiceCreateAndQuery(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	notes := newMemoryNoteService(pub, 0)

	_, err := notes.Create(ctx, store.NewNote{Title: "Lista del súper", Body: "leche y pan", Tags: []string{"Compras"}})
	require.NoError(t, err)
	id, err := notes.Create(ctx, store.NewNote{Title: "Receta de arepas venezolanas", Body: "harina de maíz", Tags: []string{"Recetas"}})
	require.NoError(t, err)

	recent, err := notes.Query(ctx, store.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, id, recent[0].ID, "newest first")
	assert.Zero(t, recent[0].Score)

	ranked, err := notes.Query(ctx, store.QueryFilter{Text: "arepas"})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, store.TierExact, ranked[0].Tier)

	tagged, err := notes.Query(ctx, store.QueryFilter{Tag: "compras"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Lista del súper", tagged[0].Title)

	assert.Equal(t, []string{events.TypeNoteSaved, events.TypeNoteSaved}, pub.types())
}

func TestNoteServiceQueryLimit(t *testing.T) {
	ctx := context.Background()
	notes := newMemoryNoteService(nil, 2)
	for _, title := range []string{"a", "b", "c"} {
		_, err := notes.Create(ctx, store.NewNote{Title: title, Tags: []string{"General"}})
		require.NoError(t, err)
	}

	got, err := notes.Query(ctx, store.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	tagged, err := notes.Query(ctx, store.QueryFilter{Tag: "General"})
	require.NoError(t, err)
	assert.Len(t, tagged, 2)
}

func TestNoteServiceKeywordSearchIgnoresQueryLimit(t *testing.T) {
	ctx := context.Background()
	notes := newMemoryNoteService(nil, 1)
	_, err := notes.Create(ctx, store.NewNote{Title: "Receta de arepas", Tags: []string{"Recetas"}})
	require.NoError(t, err)
	_, err = notes.Create(ctx, store.NewNote{Title: "Lista del súper", Tags: []string{"Compras"}})
	require.NoError(t, err)

	got, err := notes.Query(ctx, store.QueryFilter{Text: "arepas"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Receta de arepas", got[0].Title)
}

func TestNoteServiceUpdateTags(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("nats down")}
	notes := newMemoryNoteService(pub, 0)

	id, err := notes.Create(ctx, store.NewNote{Title: "X", Tags: []string{"A"}})
	require.NoError(t, err, "publish failures are not store failures")

	require.NoError(t, notes.UpdateTags(ctx, id, []string{"B", "C"}))
	got, err := notes.Query(ctx, store.QueryFilter{Tag: "b"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"B", "C"}, got[0].Tags)
	assert.Equal(t, []string{events.TypeNoteSaved, events.TypeNoteTagsUpdated}, pub.types())

	assert.ErrorIs(t, notes.UpdateTags(ctx, uuid.NewString(), []string{"Z"}), store.ErrNoteNotFound)
	assert.ErrorIs(t, notes.UpdateTags(ctx, "not-a-uuid", []string{"Z"}), store.ErrNoteNotFound)
}

func TestNoteServiceStatsAndTags(t *testing.T) {
	ctx := context.Background()
	notes := newMemoryNoteService(nil, 0)
	for _, tags := range [][]string{{"Recetas"}, {"Recetas", "Ideas"}, {"Trabajo"}} {
		_, err := notes.Create(ctx, store.NewNote{Title: "n", Tags: tags})
		require.NoError(t, err)
	}

	stats, err := notes.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.Equal(t, map[string]int64{"Recetas": 2, "Ideas": 1, "Trabajo": 1}, stats.PerTag)

	tags, err := notes.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recetas", "Ideas", "Trabajo"}, tags)
}

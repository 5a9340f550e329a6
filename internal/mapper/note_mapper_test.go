package mapper

import (
	"testing"
	"time"

	"ai-note-assistant/internal/entity"
	"ai-note-assistant/pkg/store"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNoteMapperKeepsTagOrder(t *testing.T) {
	m := NewNoteMapper()
	id := uuid.New()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := &entity.Note{Id: id, Title: "Pasta", Body: "Receta", Tags: []string{"Recetas", "Ideas"}, CreatedAt: created}

	back := m.ToEntity(m.ToModel(e))
	if diff := cmp.Diff(e, back); diff != "" {
		t.Errorf("entity mismatch (-want +got):\n%s", diff)
	}

	got := m.ToStore([]*entity.Note{back})
	assert.Equal(t, []store.Note{{ID: id.String(), Title: "Pasta", Body: "Receta", Tags: []string{"Recetas", "Ideas"}, CreatedAt: created}}, got)
}

func TestNoteMapperNil(t *testing.T) {
	m := NewNoteMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}

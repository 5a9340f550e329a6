package mapper

import (
	"time"

	"ai-note-assistant/internal/entity"
	"ai-note-assistant/internal/model"
	"ai-note-assistant/pkg/store"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		Tags:      append([]string(nil), n.Tags...),
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	tags := datatypes.JSONSlice[string]{}
	tags = append(tags, n.Tags...)

	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

// ToStore converts persisted notes into the assistant's view of them.
func (m *NoteMapper) ToStore(notes []*entity.Note) []store.Note {
	out := make([]store.Note, len(notes))
	for i, n := range notes {
		out[i] = store.Note{
			ID:        n.Id.String(),
			Title:     n.Title,
			Body:      n.Body,
			Tags:      append([]string(nil), n.Tags...),
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}

package contract

import (
	"context"

	"ai-note-assistant/internal/entity"
	"ai-note-assistant/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// UpdateTags returns store.ErrNoteNotFound when no note has the id.
	UpdateTags(ctx context.Context, id uuid.UUID, tags []string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountByTag returns how many notes carry each tag.
	CountByTag(ctx context.Context) (map[string]int64, error)
	// DistinctTags lists every tag in use, most used first.
	DistinctTags(ctx context.Context) ([]string, error)
}

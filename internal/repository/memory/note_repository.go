package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ai-note-assistant/internal/entity"
	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/internal/repository/specification"
	"ai-note-assistant/pkg/store"

	"github.com/google/uuid"
)

// NoteRepository keeps notes in process memory. It understands the note
// specifications (ByID, ByTag, OrderBy on created_at, Pagination) and rejects others.
type NoteRepository struct {
	mu    sync.RWMutex
	notes []*entity.Note // insertion order
	now   func() time.Time
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{now: time.Now}
}

func copyNote(n *entity.Note) *entity.Note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	return &c
}

func (r *NoteRepository) Create(_ context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = r.now()
	}
	r.notes = append(r.notes, copyNote(note))
	return nil
}

func (r *NoteRepository) UpdateTags(_ context.Context, id uuid.UUID, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notes {
		if n.Id == id {
			n.Tags = append([]string(nil), tags...)
			now := r.now()
			n.UpdatedAt = &now
			return nil
		}
	}
	return store.ErrNoteNotFound
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil || len(notes) == 0 {
		return nil, err
	}
	return notes[0], nil
}

func (r *NoteRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Note, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, copyNote(n))
	}

	var page *specification.Pagination
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			out = filter(out, func(n *entity.Note) bool { return n.Id == s.ID })
		case specification.ByTag:
			out = filter(out, func(n *entity.Note) bool { return hasTag(n, s.Tag) })
		case specification.OrderBy:
			if s.Field != "created_at" {
				return nil, fmt.Errorf("memory note repository cannot order by %q", s.Field)
			}
			desc := s.Desc
			if desc {
				// Equal timestamps: later inserts first
				for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
					out[i], out[j] = out[j], out[i]
				}
			}
			sort.SliceStable(out, func(i, j int) bool {
				if desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		case specification.Pagination:
			p := s
			page = &p
		default:
			return nil, fmt.Errorf("memory note repository does not support %T", spec)
		}
	}

	if page != nil {
		if page.Offset >= len(out) {
			return []*entity.Note{}, nil
		}
		out = out[page.Offset:]
		if page.Limit > 0 && page.Limit < len(out) {
			out = out[:page.Limit]
		}
	}
	return out, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}

func (r *NoteRepository) CountByTag(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, n := range r.notes {
		for _, tag := range n.Tags {
			counts[tag]++
		}
	}
	return counts, nil
}

func (r *NoteRepository) DistinctTags(ctx context.Context) ([]string, error) {
	counts, _ := r.CountByTag(ctx)
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags, nil
}

func filter(notes []*entity.Note, keep func(*entity.Note) bool) []*entity.Note {
	out := notes[:0]
	for _, n := range notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func hasTag(n *entity.Note, tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

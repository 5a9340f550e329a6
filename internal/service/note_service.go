package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-note-assistant/internal/entity"
	"ai-note-assistant/internal/mapper"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/internal/repository/specification"
	"ai-note-assistant/internal/repository/unitofwork"
	"ai-note-assistant/pkg/events"
	"ai-note-assistant/pkg/store"

	"github.com/google/uuid"
)

// NoteRanker orders notes by relevance to a free-text query.
type NoteRanker interface {
	Search(notes []store.Note, query string) []store.ScoredNote
}

// EventPublisher emits domain events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	ranker         NoteRanker
	eventPublisher EventPublisher
	queryLimit     int
	mapper         *mapper.NoteMapper
	logger         logger.ILogger
}

// NewNoteService returns the note store used by the assistant. queryLimit caps
// how many recent notes a query considers; eventPublisher may be nil.
func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	ranker NoteRanker,
	eventPublisher EventPublisher,
	queryLimit int,
	log logger.ILogger,
) store.NoteStore {
	return &noteService{
		uowFactory:     uowFactory,
		ranker:         ranker,
		eventPublisher: eventPublisher,
		queryLimit:     queryLimit,
		mapper:         mapper.NewNoteMapper(),
		logger:         log,
	}
}

func (s *noteService) Create(ctx context.Context, req store.NewNote) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		Tags:      append([]string(nil), req.Tags...),
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("Notes", "Note saved", map[string]interface{}{
		"note_id": note.Id,
		"tags":    note.Tags,
	})
	s.publish(ctx, events.NewNoteSaved(note.Id.String(), note.Title, note.Tags))

	return note.Id.String(), nil
}

func (s *noteService) UpdateTags(ctx context.Context, id string, tags []string) (err error) {
	noteID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", store.ErrNoteNotFound, id)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin update tags: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := uow.Rollback(); rbErr != nil {
				s.logger.Error("Notes", "Rollback failed", map[string]interface{}{"error": rbErr})
			}
		}
	}()

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteID})
	if err != nil {
		return fmt.Errorf("find note %s: %w", id, err)
	}
	if note == nil {
		return store.ErrNoteNotFound
	}

	if err = uow.NoteRepository().UpdateTags(ctx, noteID, tags); err != nil {
		return fmt.Errorf("update tags of %s: %w", id, err)
	}
	if err = uow.Commit(); err != nil {
		return fmt.Errorf("commit update tags: %w", err)
	}

	s.logger.Info("Notes", "Note tags updated", map[string]interface{}{
		"note_id": id,
		"tags":    tags,
	})
	s.publish(ctx, events.NewNoteTagsUpdated(id, note.Title, tags))
	return nil
}

func (s *noteService) Query(ctx context.Context, filter store.QueryFilter) ([]store.ScoredNote, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.NewestFirst()}
	if filter.Tag != "" {
		specs = append(specs, specification.ByTag{Tag: filter.Tag})
	}
	// Ranked searches see every note; the cap only bounds plain listings
	if s.queryLimit > 0 && filter.Text == "" {
		specs = append(specs, specification.Pagination{Limit: s.queryLimit})
	}

	found, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	notes := s.mapper.ToStore(found)

	if filter.Text == "" {
		return store.Unscored(notes), nil
	}
	return s.ranker.Search(notes, filter.Text), nil
}

func (s *noteService) Count(ctx context.Context) (*store.Stats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.NoteRepository().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}
	perTag, err := uow.NoteRepository().CountByTag(ctx)
	if err != nil {
		return nil, fmt.Errorf("count notes by tag: %w", err)
	}
	return &store.Stats{Total: total, PerTag: perTag}, nil
}

func (s *noteService) ListTags(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tags, err := uow.NoteRepository().DistinctTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *noteService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	// Auxiliary: a failed publish never fails the store operation
	if err := s.eventPublisher.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Notes", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

// Package state owns the tag-correction dialog state of each conversation.
package state

import (
	"context"
	"fmt"
	"time"

	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/pkg/store"
)

// Manager loads, transitions and commits conversation states
type Manager struct {
	repo   contract.ConversationRepository
	logger logger.ILogger
	now    func() time.Time
}

func NewManager(repo contract.ConversationRepository, log logger.ILogger) *Manager {
	return &Manager{repo: repo, logger: log, now: time.Now}
}

// Load returns a working copy of the conversation's state, idle when unknown.
// Changes to it are invisible to other turns until Commit.
func (m *Manager) Load(ctx context.Context, conversationID string) (*store.ConversationState, error) {
	s, found, err := m.repo.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation state: %w", err)
	}
	if !found {
		return store.NewConversationState(conversationID), nil
	}
	return s.Clone(), nil
}

func (m *Manager) Commit(ctx context.Context, s *store.ConversationState) error {
	s.UpdatedAt = m.now()
	if err := m.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("save conversation state: %w", err)
	}
	return nil
}

// Forget drops the conversation entirely.
func (m *Manager) Forget(ctx context.Context, conversationID string) error {
	if err := m.repo.Delete(ctx, conversationID); err != nil {
		return fmt.Errorf("delete conversation state: %w", err)
	}
	m.logger.Info("State", "Conversation forgotten", map[string]interface{}{"conversation_id": conversationID})
	return nil
}

// TransitionToAwaiting remembers a freshly saved note so its tags can be corrected
func (m *Manager) TransitionToAwaiting(s *store.ConversationState, note store.PendingNote) {
	note.Tags = append([]string(nil), note.Tags...)
	s.PendingNote = &note
	s.AwaitingTagCorrection = true
	m.logger.Debug("State", "Transitioned to AWAITING_TAG_CORRECTION", map[string]interface{}{
		"conversation_id": s.ID,
		"note_id":         note.ID,
	})
}

// TransitionToIdle closes the correction dialog once tags are settled
func (m *Manager) TransitionToIdle(s *store.ConversationState) {
	s.PendingNote = nil
	s.AwaitingTagCorrection = false
	m.logger.Debug("State", "Transitioned to IDLE", map[string]interface{}{"conversation_id": s.ID})
}

// Reset abandons any pending dialog and the last query
func (m *Manager) Reset(s *store.ConversationState) {
	s.PendingNote = nil
	s.AwaitingTagCorrection = false
	s.LastQueryTerm = ""
	m.logger.Debug("State", "Conversation reset", map[string]interface{}{"conversation_id": s.ID})
}

func (m *Manager) RecordQuery(s *store.ConversationState, term string) {
	s.LastQueryTerm = term
}

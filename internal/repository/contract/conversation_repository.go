package contract

import (
	"context"

	"ai-note-assistant/pkg/store"
)

// ConversationRepository keeps per-conversation dialog state.
// Get reports found=false, with no error, for unknown or expired conversations.
type ConversationRepository interface {
	Get(ctx context.Context, id string) (*store.ConversationState, bool, error)
	Save(ctx context.Context, state *store.ConversationState) error
	Delete(ctx context.Context, id string) error
}

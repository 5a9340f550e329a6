package memory

import (
	"context"
	"time"

	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/pkg/store"

	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	cache *cache.Cache
}

// NewConversationRepository keeps states in process memory. A ttl of 0 never
// expires them; otherwise each save restarts the inactivity window.
func NewConversationRepository(ttl time.Duration) contract.ConversationRepository {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		// Purge expired conversations periodically
		expiration, cleanup = ttl, 10*time.Minute
	}
	return &ConversationRepository{
		cache: cache.New(expiration, cleanup),
	}
}

// Stored values are copies so callers never share a state across turns
func (r *ConversationRepository) Save(_ context.Context, state *store.ConversationState) error {
	r.cache.Set(state.ID, state.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) Get(_ context.Context, id string) (*store.ConversationState, bool, error) {
	if x, found := r.cache.Get(id); found {
		return x.(*store.ConversationState).Clone(), true, nil
	}
	return nil, false, nil
}

func (r *ConversationRepository) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

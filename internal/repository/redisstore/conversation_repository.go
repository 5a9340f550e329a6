package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "assistant:conversation:"

type ConversationRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewConversationRepository stores states as JSON under assistant:conversation:<id>.
// A ttl of 0 keeps keys until deleted.
func NewConversationRepository(rdb *redis.Client, ttl time.Duration) contract.ConversationRepository {
	return &ConversationRepository{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (r *ConversationRepository) Save(ctx context.Context, state *store.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", state.ID, err)
	}
	if err := r.rdb.Set(ctx, key(state.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation %s: %w", state.ID, err)
	}
	return nil
}

func (r *ConversationRepository) Get(ctx context.Context, id string) (*store.ConversationState, bool, error) {
	data, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load conversation %s: %w", id, err)
	}

	var state store.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return &state, true, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, key(id)).Err()
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"ai-note-assistant/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RepliesChannel is the Redis channel replies are fanned out on between instances.
const RepliesChannel = "assistant_replies"

var ErrNoListeners = errors.New("no websocket listeners for conversation")

// Reply is the frame pushed to websocket clients.
type Reply struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

type clusterEnvelope struct {
	Origin         string          `json:"origin"`
	ConversationID string          `json:"conversation_id"`
	Message        json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients: ConversationID -> clients (several tabs or devices)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication, optional
	rdb *redis.Client
	// Identifies this instance on the Redis channel
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run serves registrations until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, clients := range h.clients {
				for _, c := range clients {
					close(c.Send)
				}
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ConversationID] = append(h.clients[client.ConversationID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"conversation_id": client.ConversationID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.ConversationID]
			for i, c := range clients {
				if c == client {
					h.clients[client.ConversationID] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.ConversationID]) == 0 {
				delete(h.clients, client.ConversationID)
				h.logger.Info("Hub", "Conversation has no more clients", map[string]interface{}{"conversation_id": client.ConversationID})
			}
			h.mu.Unlock()
		}
	}
}

// Register returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Deliver pushes a reply to every client of the conversation, on this instance
// and, when Redis is configured, on the others.
func (h *Hub) Deliver(ctx context.Context, conversationID, text string) error {
	data, err := json.Marshal(Reply{Type: "reply", ConversationID: conversationID, Text: text})
	if err != nil {
		return err
	}

	delivered := h.sendLocal(conversationID, data)

	if h.rdb != nil {
		payload, err := json.Marshal(clusterEnvelope{
			Origin:         h.instanceID,
			ConversationID: conversationID,
			Message:        data,
		})
		if err != nil {
			return err
		}
		return h.rdb.Publish(ctx, RepliesChannel, payload).Err()
	}

	if !delivered {
		return ErrNoListeners
	}
	return nil
}

func (h *Hub) sendLocal(conversationID string, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.clients[conversationID]
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping reply", map[string]interface{}{"conversation_id": conversationID})
		}
	}
	return len(clients) > 0
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RepliesChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			// Already delivered locally by Deliver
			if env.Origin == h.instanceID {
				continue
			}
			h.sendLocal(env.ConversationID, env.Message)
		}
	}
}

// ClientCount reports how many clients are attached to a conversation.
func (h *Hub) ClientCount(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[conversationID])
}

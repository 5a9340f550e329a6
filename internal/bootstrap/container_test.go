package bootstrap

import (
	"context"
	"testing"
	"time"

	"ai-note-assistant/internal/config"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedOracle struct {
	reply string
}

func (o *cannedOracle) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return o.reply, nil
}

func (o *cannedOracle) Generate(context.Context, string, ...llm.Option) (string, error) {
	return o.reply, nil
}

func memoryConfig() *config.Config {
	return &config.Config{
		Database:     config.DatabaseConfig{QueryLimit: 100},
		Conversation: config.ConversationConfig{Store: "memory", TTL: time.Hour},
		Ai:           config.AIConfig{LLMProvider: "ollama"},
		Events:       config.EventsConfig{InboundTopic: "inbound"},
	}
}

func TestNewContainerInMemory(t *testing.T) {
	oracle := &cannedOracle{reply: `{"intent":"save_note","confidence":0.9,"title":"Comprar pan","body":"Comprar pan integral","tags":["Compras"]}`}

	c, err := NewContainer(context.Background(), nil, memoryConfig(), Options{Oracle: oracle, Logger: logger.NewNopLogger()})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.LexiconWatcher)
	require.NotNil(t, c.WebSocketHub)

	reply := c.AssistantService.HandleTurn(context.Background(), "c1", "apunta comprar pan integral")
	assert.Contains(t, reply, "Comprar pan")

	stats, err := c.NoteStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
}

func TestNewContainerRejectsBadConversationStore(t *testing.T) {
	cfg := memoryConfig()
	cfg.Conversation.Store = "redis"
	_, err := NewContainer(context.Background(), nil, cfg, Options{Oracle: &cannedOracle{}, Logger: logger.NewNopLogger()})
	assert.Error(t, err)

	cfg.Conversation.Store = "etcd"
	_, err = NewContainer(context.Background(), nil, cfg, Options{Oracle: &cannedOracle{}, Logger: logger.NewNopLogger()})
	assert.Error(t, err)
}

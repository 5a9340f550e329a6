package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Unparseable or empty values fall back to the defaults
	for _, k := range []string{"CONVERSATION_TTL", "LEXICON_WATCH", "NOTE_QUERY_LIMIT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.Conversation.TTL)
	assert.True(t, cfg.Search.LexiconWatch)
	assert.Equal(t, 500, cfg.Database.QueryLimit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONVERSATION_TTL", "0")
	t.Setenv("LEXICON_WATCH", "false")
	t.Setenv("NOTE_QUERY_LIMIT", "50")
	t.Setenv("GO_ENV", "production")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, time.Duration(0), cfg.Conversation.TTL)
	assert.False(t, cfg.Search.LexiconWatch)
	assert.Equal(t, 50, cfg.Database.QueryLimit)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Tracing.Enabled)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_DURATION", "90m")
	assert.Equal(t, 90*time.Minute, getEnvAsDuration("X_DURATION", time.Second))
	t.Setenv("X_DURATION", "120")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("X_DURATION", time.Second))
	t.Setenv("X_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("X_DURATION", time.Second))
}

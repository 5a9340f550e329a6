package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ai-note-assistant/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLexiconWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synonyms:\n  mate: [yerba]\n"), 0o644))

	w, err := NewLexiconWatcher(path, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"yerba"}, w.Lexicon().Related("mate"))

	require.NoError(t, os.WriteFile(path, []byte("synonyms:\n  mate: [bombilla]\n"), 0o644))
	require.NoError(t, w.Reload())
	assert.Equal(t, []string{"bombilla"}, w.Lexicon().Related("mate"))

	// A broken file leaves the previous lexicon in place.
	require.NoError(t, os.WriteFile(path, []byte("synonyms: [oops"), 0o644))
	assert.Error(t, w.Reload())
	assert.Equal(t, []string{"bombilla"}, w.Lexicon().Related("mate"))
}

func TestLexiconWatcher_RunPicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synonyms:\n  mate: [yerba]\n"), 0o644))

	w, err := NewLexiconWatcher(path, logger.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("synonyms:\n  mate: [termo]\n"), 0o644)
		related := w.Lexicon().Related("mate")
		return len(related) == 1 && related[0] == "termo"
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestNewLexiconWatcher_MissingFile(t *testing.T) {
	_, err := NewLexiconWatcher(filepath.Join(t.TempDir(), "nope.yaml"), logger.NewNopLogger())
	assert.Error(t, err)
}

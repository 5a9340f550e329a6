package search

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"ai-note-assistant/internal/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// LexiconWatcher serves a lexicon loaded from a YAML file and reloads it when the
// file changes. A broken edit keeps the previous lexicon in place.
type LexiconWatcher struct {
	path    string
	current atomic.Pointer[Lexicon]
	logger  logger.ILogger
}

// NewLexiconWatcher loads path once. Call Run to start following changes.
func NewLexiconWatcher(path string, log logger.ILogger) (*LexiconWatcher, error) {
	lex, err := LoadLexicon(path)
	if err != nil {
		return nil, err
	}
	w := &LexiconWatcher{path: path, logger: log}
	w.current.Store(lex)
	return w, nil
}

func (w *LexiconWatcher) Lexicon() *Lexicon {
	return w.current.Load()
}

// Reload re-reads the file and swaps the lexicon in on success.
func (w *LexiconWatcher) Reload() error {
	lex, err := LoadLexicon(w.path)
	if err != nil {
		return err
	}
	w.current.Store(lex)
	w.logger.Info("Search", "Lexicon reloaded", map[string]interface{}{
		"path":       w.path,
		"stop_words": len(lex.StopWords),
		"synonyms":   len(lex.Synonyms),
	})
	return nil
}

// Run blocks until ctx is done. The parent directory is watched because editors
// usually replace files by rename rather than writing in place.
func (w *LexiconWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.logger.Warn("Search", "Lexicon reload failed, keeping previous", map[string]interface{}{
					"path":  w.path,
					"error": err.Error(),
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Search", "Lexicon watcher error", map[string]interface{}{"error": err})
		}
	}
}

package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"ai-note-assistant/internal/constant"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/pkg/llm"
)

const maxDerivedTitleLen = 60

// TagVocabulary lists the tags already in use.
type TagVocabulary interface {
	ListTags(ctx context.Context) ([]string, error)
}

// TagSuggester proposes extra tags for a note body.
type TagSuggester interface {
	Suggest(ctx context.Context, text string) []string
}

type Classifier struct {
	oracle    llm.LLMProvider
	vocab     TagVocabulary
	suggester TagSuggester
	logger    logger.ILogger
}

func NewClassifier(oracle llm.LLMProvider, vocab TagVocabulary, suggester TagSuggester, log logger.ILogger) *Classifier {
	return &Classifier{oracle: oracle, vocab: vocab, suggester: suggester, logger: log}
}

// Classify asks the oracle what the message wants. Output the oracle gets wrong
// becomes a low-confidence Conversation; only transport failures are returned.
func (c *Classifier) Classify(ctx context.Context, text string) (Intent, error) {
	vocabulary := c.vocabulary(ctx)
	prompt := fmt.Sprintf(constant.IntentClassificationPrompt, strings.Join(vocabulary, ", "), text)

	raw, err := c.oracle.Generate(ctx, prompt,
		llm.WithTemperature(constant.IntentClassificationTemperature),
		llm.WithJSONResponse(),
	)
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		return nil, fmt.Errorf("classify message: %w", err)
	}

	parsed, err := Parse(raw)
	if err != nil {
		c.logger.Warn("Classifier", "Rejected oracle output", map[string]interface{}{
			"error":  err.Error(),
			"output": raw,
		})
		return Fallback(), nil
	}

	switch in := parsed.(type) {
	case SaveNote:
		in = normalizeSaveNote(in, text)
		in.SuggestedTags = c.suggester.Suggest(ctx, in.Body)
		c.logger.Debug("Classifier", "Classified save_note", map[string]interface{}{
			"title":      in.Title,
			"tags":       in.Tags,
			"suggested":  in.SuggestedTags,
			"confidence": in.Confidence,
		})
		return in, nil
	case TagCorrection:
		in.SourceText = text
		return in, nil
	default:
		c.logger.Debug("Classifier", "Classified message", map[string]interface{}{
			"intent": string(parsed.Kind()),
		})
		return parsed, nil
	}
}

// Fallback is the intent used when the oracle output cannot be trusted.
func Fallback() Conversation {
	return Conversation{
		Reply:      constant.ClassificationFallbackReply,
		Confidence: constant.ClassificationFallbackConfidence,
	}
}

func (c *Classifier) vocabulary(ctx context.Context) []string {
	tags, err := c.vocab.ListTags(ctx)
	if err != nil {
		c.logger.Warn("Classifier", "Tag vocabulary unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return []string{constant.DefaultTag}
	}
	if len(tags) == 0 {
		return []string{constant.DefaultTag}
	}
	return tags
}

func normalizeSaveNote(s SaveNote, message string) SaveNote {
	if s.Body == "" {
		s.Body = strings.TrimSpace(message)
	}
	if s.Title == "" {
		s.Title = titleFromBody(s.Body)
	}
	if len(s.Tags) == 0 {
		s.Tags = []string{constant.DefaultTag}
	}
	return s
}

// titleFromBody takes whole leading words of body up to maxDerivedTitleLen runes.
func titleFromBody(body string) string {
	var b strings.Builder
	for _, w := range strings.Fields(body) {
		n := utf8.RuneCountInString(b.String())
		wl := utf8.RuneCountInString(w)
		if n == 0 && wl > maxDerivedTitleLen {
			return string([]rune(w)[:maxDerivedTitleLen])
		}
		if n > 0 && n+1+wl > maxDerivedTitleLen {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}

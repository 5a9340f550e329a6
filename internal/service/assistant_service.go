package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"ai-note-assistant/internal/constant"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/pkg/assistant/correction"
	"ai-note-assistant/pkg/assistant/intent"
	"ai-note-assistant/pkg/assistant/response"
	"ai-note-assistant/pkg/assistant/state"
	"ai-note-assistant/pkg/store"
)

// IAssistantService runs conversation turns.
type IAssistantService interface {
	// HandleTurn processes one inbound message and returns the reply. It always
	// returns some reply, failures included.
	HandleTurn(ctx context.Context, conversationID, text string) string
	// Respond handles a turn and delivers the reply through the configured Sender.
	Respond(ctx context.Context, conversationID, text string) error
	ResetConversation(ctx context.Context, conversationID string) error
}

// Classifier decides what a message wants.
type Classifier interface {
	Classify(ctx context.Context, text string) (intent.Intent, error)
}

// Sender delivers replies back to a conversation.
type Sender interface {
	Deliver(ctx context.Context, conversationID, text string) error
}

var ErrNoSender = errors.New("no reply sender configured")

type assistantService struct {
	classifier Classifier
	notes      store.NoteStore
	states     *state.Manager
	formatter  *response.Formatter
	sender     Sender
	locks      *conversationLocks
	logger     logger.ILogger
}

// NewAssistantService wires the orchestrator. sender may be nil when replies are
// only taken from HandleTurn.
func NewAssistantService(
	classifier Classifier,
	notes store.NoteStore,
	states *state.Manager,
	formatter *response.Formatter,
	sender Sender,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		classifier: classifier,
		notes:      notes,
		states:     states,
		formatter:  formatter,
		sender:     sender,
		locks:      newConversationLocks(),
		logger:     log,
	}
}

func (s *assistantService) HandleTurn(ctx context.Context, conversationID, text string) string {
	reply, _ := s.turn(ctx, conversationID, text, nil)
	return reply
}

// Respond commits the new state only after the reply was delivered, so an
// undeliverable turn leaves the conversation where it was.
func (s *assistantService) Respond(ctx context.Context, conversationID, text string) error {
	if s.sender == nil {
		return ErrNoSender
	}
	_, err := s.turn(ctx, conversationID, text, func(reply string) error {
		return s.sender.Deliver(ctx, conversationID, reply)
	})
	return err
}

// turn runs one message under the conversation lock. deliver, when set, runs
// before the state is committed; its error is the only one returned.
func (s *assistantService) turn(ctx context.Context, conversationID, text string, deliver func(string) error) (reply string, err error) {
	unlock := s.locks.lock(conversationID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Assistant", "Turn panicked", map[string]interface{}{
				"conversation_id": conversationID,
				"panic":           fmt.Sprint(r),
			})
			reply = constant.GenericFailureReply
			err = s.deliver(conversationID, reply, deliver)
		}
	}()

	// Working copy; only committed once the whole turn succeeded
	st, loadErr := s.states.Load(ctx, conversationID)
	if loadErr != nil {
		s.fail(conversationID, "Failed to load conversation state", loadErr)
		return constant.GenericFailureReply, s.deliver(conversationID, constant.GenericFailureReply, deliver)
	}

	reply, runErr := s.runTurn(ctx, st, text)
	if runErr != nil {
		s.fail(conversationID, "Turn failed", runErr)
		return constant.GenericFailureReply, s.deliver(conversationID, constant.GenericFailureReply, deliver)
	}

	if err := s.deliver(conversationID, reply, deliver); err != nil {
		s.logger.Warn("Assistant", "Reply not delivered, state left unchanged", map[string]interface{}{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
		return reply, err
	}

	if err := s.states.Commit(ctx, st); err != nil {
		s.fail(conversationID, "Failed to persist conversation state", err)
		return constant.GenericFailureReply, nil
	}
	return reply, nil
}

func (s *assistantService) deliver(conversationID, reply string, deliver func(string) error) error {
	if deliver == nil {
		return nil
	}
	if err := deliver(reply); err != nil {
		return fmt.Errorf("deliver reply to %s: %w", conversationID, err)
	}
	return nil
}

func (s *assistantService) ResetConversation(ctx context.Context, conversationID string) error {
	unlock := s.locks.lock(conversationID)
	defer unlock()
	return s.states.Forget(ctx, conversationID)
}

func (s *assistantService) runTurn(ctx context.Context, st *store.ConversationState, text string) (string, error) {
	if reply, ok := s.tryCorrection(ctx, st, text); ok {
		return reply, nil
	}

	in, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return "", err
	}
	details := map[string]interface{}{
		"conversation_id": st.ID,
		"intent":          string(in.Kind()),
		"state":           st.Status(),
	}
	if c, ok := intent.ConfidenceOf(in); ok {
		details["confidence"] = c
		details["high_confidence"] = intent.IsHighConfidence(c)
	}
	s.logger.Info("Assistant", "Message classified", details)
	return s.handleIntent(ctx, st, in, text), nil
}

// tryCorrection handles the message as a tag correction when a note is pending
// and the text matches one of the correction phrasings.
func (s *assistantService) tryCorrection(ctx context.Context, st *store.ConversationState, text string) (string, bool) {
	if st.Status() != store.StateAwaitingTagCorrection {
		return "", false
	}
	tags, ok := correction.Parse(text)
	if !ok {
		return "", false
	}
	return s.applyCorrection(ctx, st, intent.TagCorrection{
		TargetNoteID: st.PendingNote.ID,
		NewTags:      tags,
		SourceText:   text,
	}), true
}

func (s *assistantService) handleIntent(ctx context.Context, st *store.ConversationState, in intent.Intent, text string) string {
	switch v := in.(type) {
	case intent.SaveNote:
		return s.saveNote(ctx, st, v)
	case intent.Query:
		return s.query(ctx, st, v)
	case intent.TagCorrection:
		if st.Status() != store.StateAwaitingTagCorrection {
			return constant.NoPendingNoteReply
		}
		v.TargetNoteID = st.PendingNote.ID
		return s.applyCorrection(ctx, st, v)
	case intent.Conversation:
		if hasGreeting(text) {
			s.states.Reset(st)
		}
		return v.Reply
	case intent.Unclear:
		return v.Question
	default:
		return intent.Fallback().Reply
	}
}

func (s *assistantService) saveNote(ctx context.Context, st *store.ConversationState, in intent.SaveNote) string {
	id, err := s.notes.Create(ctx, store.NewNote{Title: in.Title, Body: in.Body, Tags: in.Tags})
	if err != nil {
		s.logger.Warn("Assistant", "Save failed", map[string]interface{}{
			"conversation_id": st.ID,
			"error":           err.Error(),
		})
		return constant.NoteSaveFailedReply
	}

	s.states.TransitionToAwaiting(st, store.PendingNote{ID: id, Title: in.Title, Tags: in.Tags})

	tags := strings.Join(in.Tags, ", ")
	extra := newTags(in.Tags, in.SuggestedTags)
	if len(extra) == 0 {
		return fmt.Sprintf(constant.NoteSavedTemplate, in.Title, tags)
	}
	combined := strings.Join(append(append([]string(nil), in.Tags...), extra...), ", ")
	return fmt.Sprintf(constant.NoteSavedWithSuggestionsTemplate, in.Title, tags, strings.Join(extra, ", "), combined)
}

// applyCorrection replaces the pending note's tags. On failure the dialog stays open.
func (s *assistantService) applyCorrection(ctx context.Context, st *store.ConversationState, c intent.TagCorrection) string {
	tags := intent.CleanTags(c.NewTags)
	if len(tags) == 0 {
		return constant.TagsUpdateFailedReply
	}

	if err := s.notes.UpdateTags(ctx, c.TargetNoteID, tags); err != nil {
		s.logger.Warn("Assistant", "Tag update failed", map[string]interface{}{
			"conversation_id": st.ID,
			"note_id":         c.TargetNoteID,
			"source_text":     c.SourceText,
			"error":           err.Error(),
		})
		return constant.TagsUpdateFailedReply
	}

	title := st.PendingNote.Title
	s.states.TransitionToIdle(st)
	return fmt.Sprintf(constant.TagsUpdatedTemplate, title, strings.Join(tags, ", "))
}

func (s *assistantService) query(ctx context.Context, st *store.ConversationState, q intent.Query) string {
	var (
		reply string
		err   error
	)
	switch q.Type {
	case intent.QueryCount:
		var stats *store.Stats
		if stats, err = s.notes.Count(ctx); err == nil {
			reply = s.formatter.FormatStats(*stats)
		}
	default:
		filter := store.QueryFilter{}
		switch q.Type {
		case intent.QueryByTag:
			filter.Tag = q.Parameter
		case intent.QueryByKeyword:
			filter.Text = q.Parameter
		}
		var notes []store.ScoredNote
		if notes, err = s.notes.Query(ctx, filter); err == nil {
			reply = s.formatter.FormatResults(notes, q.Type, q.Parameter)
		}
	}

	if err != nil {
		s.logger.Warn("Assistant", "Query failed", map[string]interface{}{
			"conversation_id": st.ID,
			"query_type":      string(q.Type),
			"error":           err.Error(),
		})
		return constant.QueryFailedReply
	}

	s.states.RecordQuery(st, q.Parameter)
	return reply
}

func (s *assistantService) fail(conversationID, message string, err error) {
	s.logger.Error("Assistant", message, map[string]interface{}{
		"conversation_id": conversationID,
		"error":           err,
	})
}

// newTags returns suggestions not already among chosen, compared case-insensitively.
func newTags(chosen, suggested []string) []string {
	have := make(map[string]bool, len(chosen))
	for _, t := range chosen {
		have[strings.ToLower(t)] = true
	}
	var out []string
	for _, t := range suggested {
		if k := strings.ToLower(t); !have[k] {
			have[k] = true
			out = append(out, t)
		}
	}
	return out
}

var greetingMarkers = map[string]bool{
	"hola": true, "buenas": true, "buenos": true, "saludos": true, "gracias": true,
	"hello": true, "hi": true, "hey": true, "thanks": true,
}

// hasGreeting reports whether text contains a greeting or thanks word.
func hasGreeting(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if greetingMarkers[w] {
			return true
		}
	}
	return false
}

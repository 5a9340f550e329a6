package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-note-assistant/internal/dto"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/internal/pkg/serverutils"
	"ai-note-assistant/internal/repository/memory"
	"ai-note-assistant/internal/service"
	"ai-note-assistant/pkg/search"
	"ai-note-assistant/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct {
	turns []string
	reset []string
}

func (s *stubAssistant) HandleTurn(_ context.Context, conversationID, text string) string {
	s.turns = append(s.turns, conversationID+":"+text)
	return "eco: " + text
}

func (s *stubAssistant) Respond(context.Context, string, string) error { return nil }

func (s *stubAssistant) ResetConversation(_ context.Context, conversationID string) error {
	s.reset = append(s.reset, conversationID)
	return nil
}

type stubPublisher struct {
	payloads [][]byte
	err      error
}

func (p *stubPublisher) Publish(_ context.Context, payload []byte) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.payloads = append(p.payloads, payload)
	return "msg-1", nil
}

func newApp(assistant service.IAssistantService, publisher service.IPublisherService, notes store.NoteStore) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewAssistantController(assistant, publisher).RegisterRoutes(api)
	NewNoteController(notes).RegisterRoutes(api)
	return app
}

func memoryNotes() store.NoteStore {
	factory := memory.NewRepositoryFactory(nil)
	return service.NewNoteService(factory, search.NewEngine(nil), nil, 500, logger.NewNopLogger())
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestSendMessage(t *testing.T) {
	assistant := &stubAssistant{}
	app := newApp(assistant, nil, memoryNotes())

	status, body := doJSON(t, app, "POST", "/api/assistant/v1/messages", `{"conversation_id":" c1 ","text":"hola"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "c1", data["conversation_id"])
	assert.Equal(t, "eco: hola", data["reply"])
	assert.Equal(t, []string{"c1:hola"}, assistant.turns)
}

func TestSendMessageValidation(t *testing.T) {
	assistant := &stubAssistant{}
	app := newApp(assistant, nil, memoryNotes())

	status, body := doJSON(t, app, "POST", "/api/assistant/v1/messages", `{"conversation_id":"c1","text":"   "}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["errors"], "Text")

	status, _ = doJSON(t, app, "POST", "/api/assistant/v1/messages", `{not json`)
	assert.Equal(t, 400, status)
	assert.Empty(t, assistant.turns)
}

func TestWebhook(t *testing.T) {
	publisher := &stubPublisher{}
	app := newApp(&stubAssistant{}, publisher, memoryNotes())

	status, body := doJSON(t, app, "POST", "/api/assistant/v1/webhook", `{"conversation_id":"c1","text":"guarda esto"}`)
	assert.Equal(t, 202, status)
	assert.Equal(t, "msg-1", body["data"].(map[string]interface{})["message_id"])

	require.Len(t, publisher.payloads, 1)
	var queued dto.InboundMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &queued))
	assert.Equal(t, dto.InboundMessage{ConversationID: "c1", Text: "guarda esto"}, queued)

	publisher.err = errors.New("queue closed")
	status, _ = doJSON(t, app, "POST", "/api/assistant/v1/webhook", `{"conversation_id":"c1","text":"otra"}`)
	assert.Equal(t, 500, status)
}

func TestWebhookWithoutQueue(t *testing.T) {
	app := newApp(&stubAssistant{}, nil, memoryNotes())

	status, _ := doJSON(t, app, "POST", "/api/assistant/v1/webhook", `{"conversation_id":"c1","text":"hola"}`)
	assert.Equal(t, 503, status)
}

func TestResetConversation(t *testing.T) {
	assistant := &stubAssistant{}
	app := newApp(assistant, nil, memoryNotes())

	status, _ := doJSON(t, app, "DELETE", "/api/assistant/v1/conversations/c9", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, []string{"c9"}, assistant.reset)
}

func TestNoteEndpoints(t *testing.T) {
	notes := memoryNotes()
	ctx := context.Background()
	_, err := notes.Create(ctx, store.NewNote{Title: "Receta de pasta", Body: "Hervir agua y sal", Tags: []string{"Cocina"}})
	require.NoError(t, err)
	_, err = notes.Create(ctx, store.NewNote{Title: "Reunión lunes", Body: "Revisar presupuesto", Tags: []string{"Trabajo"}})
	require.NoError(t, err)

	app := newApp(&stubAssistant{}, nil, notes)

	status, body := doJSON(t, app, "GET", "/api/assistant/v1/notes?q=pasta", "")
	assert.Equal(t, 200, status)
	found := body["data"].(map[string]interface{})["notes"].([]interface{})
	require.Len(t, found, 1)
	first := found[0].(map[string]interface{})
	assert.Equal(t, "Receta de pasta", first["title"])
	assert.Equal(t, "exact", first["tier"])

	status, body = doJSON(t, app, "GET", "/api/assistant/v1/notes?q=%23trabajo", "")
	assert.Equal(t, 200, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "trabajo", data["tag"])
	assert.Len(t, data["notes"], 1)

	status, body = doJSON(t, app, "GET", "/api/assistant/v1/notes/stats", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(2), body["data"].(map[string]interface{})["total"])

	status, body = doJSON(t, app, "GET", "/api/assistant/v1/tags", "")
	assert.Equal(t, 200, status)
	assert.ElementsMatch(t, []interface{}{"Cocina", "Trabajo"}, body["data"].(map[string]interface{})["tags"])
}

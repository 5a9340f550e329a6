package handler

import (
	"context"
	"strings"

	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/internal/service"
	internalWS "ai-note-assistant/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ConversationHandler serves the websocket transport: text frames are turns
// and replies are pushed back through the hub.
type ConversationHandler struct {
	assistant service.IAssistantService
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewConversationHandler(assistant service.IAssistantService, hub *internalWS.Hub, log logger.ILogger) *ConversationHandler {
	return &ConversationHandler{
		assistant: assistant,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ConversationHandler) ServeWs(c *fiber.Ctx) error {
	conversationID := strings.TrimSpace(c.Params("conversation_id"))
	if conversationID == "" || len(conversationID) > 128 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ConversationHandler", "Starting WebSocket session", map[string]interface{}{"conversation_id": conversationID})
		internalWS.ServeWs(h.hub, conn, conversationID, h.onMessage)
		h.logger.Info("ConversationHandler", "WebSocket session ended", map[string]interface{}{"conversation_id": conversationID})
	})(c)
}

func (h *ConversationHandler) onMessage(conversationID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if err := h.assistant.Respond(context.Background(), conversationID, text); err != nil {
		h.logger.Warn("ConversationHandler", "Reply not delivered", map[string]interface{}{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
	}
}

// RegisterRoutes registers the websocket route.
func (h *ConversationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/assistant/v1/ws/:conversation_id", h.ServeWs)
}

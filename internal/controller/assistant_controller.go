package controller

import (
	"encoding/json"
	"strings"

	"ai-note-assistant/internal/dto"
	"ai-note-assistant/internal/pkg/serverutils"
	"ai-note-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	ResetConversation(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	publisherService service.IPublisherService
}

// NewAssistantController wires the turn endpoints. publisherService may be nil,
// in which case the webhook answers 503.
func NewAssistantController(assistantService service.IAssistantService, publisherService service.IPublisherService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		publisherService: publisherService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("messages", c.SendMessage)
	h.Post("webhook", c.Webhook)
	h.Delete("conversations/:conversation_id", c.ResetConversation)
}

func parseMessage(ctx *fiber.Ctx) (*dto.SendMessageRequest, error) {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.ConversationID = strings.TrimSpace(req.ConversationID)
	req.Text = strings.TrimSpace(req.Text)

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *assistantController) SendMessage(ctx *fiber.Ctx) error {
	req, err := parseMessage(ctx)
	if err != nil {
		return err
	}

	reply := c.assistantService.HandleTurn(ctx.UserContext(), req.ConversationID, req.Text)

	return ctx.JSON(serverutils.SuccessResponse("Success handle message", dto.SendMessageResponse{
		ConversationID: req.ConversationID,
		Reply:          reply,
	}))
}

func (c *assistantController) Webhook(ctx *fiber.Ctx) error {
	if c.publisherService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Inbound queue not configured")
	}

	req, err := parseMessage(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(dto.InboundMessage{ConversationID: req.ConversationID, Text: req.Text})
	if err != nil {
		return err
	}

	id, err := c.publisherService.Publish(ctx.UserContext(), payload)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Message queued", dto.WebhookAcceptedResponse{
		ConversationID: req.ConversationID,
		MessageID:      id,
	}))
}

func (c *assistantController) ResetConversation(ctx *fiber.Ctx) error {
	conversationID := strings.TrimSpace(ctx.Params("conversation_id"))
	if conversationID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing conversation id")
	}

	if err := c.assistantService.ResetConversation(ctx.UserContext(), conversationID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation reset", nil))
}

package dto

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,max=128"`
	Text           string `json:"text" validate:"required,max=4000"`
}

type SendMessageResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

type WebhookAcceptedResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
}

// InboundMessage is the payload queued on the inbound topic.
type InboundMessage struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

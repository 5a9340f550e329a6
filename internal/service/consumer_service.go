package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"ai-note-assistant/internal/dto"
	"ai-note-assistant/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	// Consume blocks until ctx is done and every queued turn has been handled.
	Consume(ctx context.Context) error
}

// consumerService feeds inbound messages to the assistant. Messages of one
// conversation are handled one at a time in arrival order; different
// conversations run in parallel.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	assistant  IAssistantService
	logger     logger.ILogger

	mu     sync.Mutex
	queues map[string][]dto.InboundMessage // present while a drainer runs
	wg     sync.WaitGroup
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	assistant IAssistantService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		assistant:  assistant,
		logger:     log,
		queues:     make(map[string][]dto.InboundMessage),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	cs.logger.Info("Consumer", "Listening for inbound messages", map[string]interface{}{"topic": cs.topicName})

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case msg, ok := <-messages:
			if !ok {
				break loop
			}
			cs.processMessage(ctx, msg)
		}
	}

	cs.wg.Wait()
	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var in dto.InboundMessage
	if err := json.Unmarshal(msg.Payload, &in); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if strings.TrimSpace(in.ConversationID) == "" {
		cs.logger.Warn("Consumer", "Dropping message without conversation id", map[string]interface{}{"message_id": msg.UUID})
		msg.Ack()
		return
	}

	cs.dispatch(ctx, in)
	msg.Ack()
}

func (cs *consumerService) dispatch(ctx context.Context, in dto.InboundMessage) {
	cs.mu.Lock()
	queue, running := cs.queues[in.ConversationID]
	cs.queues[in.ConversationID] = append(queue, in)
	cs.mu.Unlock()

	if !running {
		cs.wg.Add(1)
		go cs.drain(ctx, in.ConversationID)
	}
}

func (cs *consumerService) drain(ctx context.Context, conversationID string) {
	defer cs.wg.Done()

	for {
		cs.mu.Lock()
		queue := cs.queues[conversationID]
		if len(queue) == 0 {
			delete(cs.queues, conversationID)
			cs.mu.Unlock()
			return
		}
		next := queue[0]
		cs.queues[conversationID] = queue[1:]
		cs.mu.Unlock()

		if err := cs.assistant.Respond(ctx, conversationID, next.Text); err != nil {
			cs.logger.Error("Consumer", "Failed to respond", map[string]interface{}{
				"conversation_id": conversationID,
				"error":           err.Error(),
			})
		}
	}
}

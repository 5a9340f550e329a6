package service

import (
	"context"

	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/pkg/events"
)

// EventAuditService records every domain event seen on the bus.
type EventAuditService struct {
	logger logger.ILogger
}

func NewEventAuditService(log logger.ILogger) *EventAuditService {
	return &EventAuditService{logger: log}
}

func (s *EventAuditService) Handle(_ context.Context, event events.Event) error {
	s.logger.Info("Audit", event.EventType(), map[string]interface{}{
		"occurred_at": event.Timestamp(),
		"payload":     event.Payload(),
	})
	return nil
}

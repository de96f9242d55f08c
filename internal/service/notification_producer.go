package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/events"
)

// NotificationProducer bridges in-process domain events onto the Redis
// outbox so the notification service can deliver them. Goals and emotions
// binaries register one against their local dispatcher.
type NotificationProducer struct {
	outbox *events.Outbox
	logger *zap.Logger
}

// NewNotificationProducer creates the producer.
func NewNotificationProducer(outbox *events.Outbox, logger *zap.Logger) *NotificationProducer {
	return &NotificationProducer{outbox: outbox, logger: logger}
}

// RegisterHandlers subscribes to the events that fan out as notifications.
func (p *NotificationProducer) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventGoalCompleted, p.handleGoalCompleted)
	dispatcher.Subscribe(events.EventLowMoodDetected, p.handleLowMoodDetected)
}

func (p *NotificationProducer) handleGoalCompleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GoalCompletedPayload)
	if !ok {
		return nil
	}
	return p.enqueue(ctx, events.OutboxMessage{
		UserID: event.UserID,
		Title:  "¡Meta cumplida!",
		Body:   payload.Title,
	})
}

func (p *NotificationProducer) handleLowMoodDetected(ctx context.Context, event events.Event) error {
	return p.enqueue(ctx, events.OutboxMessage{
		UserID: event.UserID,
		Title:  "Estamos contigo",
		Body:   "Registraste un estado de ánimo bajo. ¿Quieres intentar un ejercicio de respiración?",
	})
}

func (p *NotificationProducer) enqueue(ctx context.Context, msg events.OutboxMessage) error {
	if err := p.outbox.Enqueue(ctx, msg); err != nil {
		p.logger.Warn("enqueue event notification failed",
			zap.Int64("user_id", msg.UserID), zap.Error(err))
		return err
	}
	return nil
}

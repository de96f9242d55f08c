package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/events"
	"github.com/bienestar-app/platform/internal/service"
)

const popTimeout = 5 * time.Second

// NotificationWorker drains the Redis outbox and hands each message to the
// notification service for delivery.
type NotificationWorker struct {
	outbox        *events.Outbox
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewNotificationWorker builds the worker.
func NewNotificationWorker(outbox *events.Outbox, notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{outbox: outbox, notifications: notifications, logger: logger}
}

// Run blocks until ctx is cancelled, popping messages one at a time.
// A failed delivery is logged and dropped; the outbox is a best-effort
// channel, the persisted rows remain the source of truth.
func (w *NotificationWorker) Run(ctx context.Context) {
	w.logger.Info("notification worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification worker stopped")
			return
		default:
		}

		msg, err := w.outbox.Dequeue(ctx, popTimeout)
		if err != nil {
			if errors.Is(err, events.ErrOutboxEmpty) || ctx.Err() != nil {
				continue
			}
			w.logger.Warn("outbox dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		if err := w.notifications.Deliver(ctx, msg); err != nil {
			w.logger.Warn("notification delivery failed",
				zap.String("message_id", msg.ID), zap.Error(err))
		}
	}
}

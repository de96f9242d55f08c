package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/domain"
	"github.com/bienestar-app/platform/internal/events"
	"github.com/bienestar-app/platform/internal/repository"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// NotificationInput carries a new reminder.
type NotificationInput struct {
	UserID      int64
	Title       string
	Body        string
	ScheduledAt *time.Time
}

// NotificationService manages reminders and drains the Redis outbox into
// persisted, delivered notifications.
type NotificationService struct {
	notifications repository.NotificationRepository
	outbox        *events.Outbox
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, outbox *events.Outbox, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, outbox: outbox, logger: logger}
}

// Create persists a reminder and queues it for delivery.
func (s *NotificationService) Create(ctx context.Context, input NotificationInput) (*domain.Notification, error) {
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	n := &domain.Notification{
		UserID:      input.UserID,
		Title:       input.Title,
		Body:        input.Body,
		ScheduledAt: input.ScheduledAt,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	if err := s.outbox.Enqueue(ctx, events.OutboxMessage{
		UserID:         n.UserID,
		Title:          n.Title,
		Body:           n.Body,
		NotificationID: n.ID,
	}); err != nil {
		s.logger.Warn("enqueue notification failed", zap.Int64("notification_id", n.ID), zap.Error(err))
	}
	return n, nil
}

// Deliver handles one outbox message. Messages that reference a persisted
// row are marked sent; event-produced messages from other services are
// persisted here. Push delivery to the device is a stub; the mobile app
// polls the list endpoint.
func (s *NotificationService) Deliver(ctx context.Context, msg *events.OutboxMessage) error {
	if msg.NotificationID > 0 {
		if err := s.notifications.MarkSent(ctx, msg.NotificationID); err != nil {
			return err
		}
	} else {
		n := &domain.Notification{
			UserID: msg.UserID,
			Title:  msg.Title,
			Body:   msg.Body,
			Sent:   true,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			return err
		}
	}
	s.logger.Info("notification delivered",
		zap.Int64("user_id", msg.UserID),
		zap.String("title", msg.Title))
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.notifications.Delete(ctx, id)
}

// NotificationOwner resolves a notification's owner for route-level checks.
func (s *NotificationService) NotificationOwner(ctx context.Context, id int64) (int64, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return n.UserID, nil
}

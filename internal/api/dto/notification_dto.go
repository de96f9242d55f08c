package dto

import (
	"time"

	"github.com/bienestar-app/platform/internal/domain"
)

// NotificationRequest payload for creating a reminder.
type NotificationRequest struct {
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// NotificationResponse is the outward notification shape.
type NotificationResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Sent        bool       `json:"sent"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Body:        n.Body,
		ScheduledAt: n.ScheduledAt,
		Sent:        n.Sent,
		CreatedAt:   n.CreatedAt,
	}
}

// NewNotificationResponses maps a list.
func NewNotificationResponses(list []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NewNotificationResponse(n))
	}
	return out
}

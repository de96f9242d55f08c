package domain

import "time"

// Notification is a reminder or alert addressed to a single user.
type Notification struct {
	ID          int64
	UserID      int64
	Title       string
	Body        string
	ScheduledAt *time.Time
	Sent        bool
	CreatedAt   time.Time
}

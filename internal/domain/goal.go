package domain

import "time"

// Goal models a personal wellness goal owned by a single user.
type Goal struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	TargetDate  *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import (
	"time"

	"github.com/bienestar-app/platform/internal/domain"
)

// GoalRequest payload for creating or updating a goal.
type GoalRequest struct {
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
}

// GoalResponse is the outward goal shape.
type GoalResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewGoalResponse maps a domain goal.
func NewGoalResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		UserID:      goal.UserID,
		Title:       goal.Title,
		Description: goal.Description,
		TargetDate:  goal.TargetDate,
		Completed:   goal.Completed,
		CreatedAt:   goal.CreatedAt,
	}
}

// NewGoalResponses maps a list.
func NewGoalResponses(goals []*domain.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		out = append(out, NewGoalResponse(goal))
	}
	return out
}

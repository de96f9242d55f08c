package events

import (
	"time"

	"github.com/bienestar-app/platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventGoalCompleted   EventType = "goal_completed"
	EventLowMoodDetected EventType = "low_mood_detected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// GoalCompletedPayload payload.
type GoalCompletedPayload struct {
	GoalID int64  `json:"goal_id"`
	Title  string `json:"title"`
}

// LowMoodDetectedPayload payload.
type LowMoodDetectedPayload struct {
	LogID int64       `json:"log_id"`
	Mood  domain.Mood `json:"mood"`
	Score int         `json:"score"`
}

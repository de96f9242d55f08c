package dto

import (
	"time"

	"github.com/bienestar-app/platform/internal/domain"
)

// EmotionRequest payload for logging a mood.
type EmotionRequest struct {
	UserID int64       `json:"user_id"`
	Mood   domain.Mood `json:"mood"`
	Note   string      `json:"note"`
}

// EmotionResponse is the outward mood entry shape.
type EmotionResponse struct {
	ID       int64       `json:"id"`
	UserID   int64       `json:"user_id"`
	Mood     domain.Mood `json:"mood"`
	Score    int         `json:"score"`
	Note     string      `json:"note,omitempty"`
	LoggedAt time.Time   `json:"logged_at"`
}

// DaySummaryResponse is one per-day aggregate row.
type DaySummaryResponse struct {
	Day          string  `json:"day"`
	AverageScore float64 `json:"average_score"`
	Entries      int     `json:"entries"`
}

// NewEmotionResponse maps a domain entry.
func NewEmotionResponse(log *domain.EmotionLog) EmotionResponse {
	return EmotionResponse{
		ID:       log.ID,
		UserID:   log.UserID,
		Mood:     log.Mood,
		Score:    log.Score,
		Note:     log.Note,
		LoggedAt: log.LoggedAt,
	}
}

// NewEmotionResponses maps a list.
func NewEmotionResponses(logs []*domain.EmotionLog) []EmotionResponse {
	out := make([]EmotionResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, NewEmotionResponse(log))
	}
	return out
}

// NewDaySummaryResponses maps aggregate rows, rendering days as dates.
func NewDaySummaryResponses(summaries []*domain.DaySummary) []DaySummaryResponse {
	out := make([]DaySummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, DaySummaryResponse{
			Day:          s.Day.Format("2006-01-02"),
			AverageScore: s.AverageScore,
			Entries:      s.Entries,
		})
	}
	return out
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/domain"
	"github.com/bienestar-app/platform/internal/events"
	"github.com/bienestar-app/platform/internal/repository"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// moodScores is the fixed mood-to-score lookup used by the mobile app's
// wellbeing charts.
var moodScores = map[domain.Mood]int{
	domain.MoodHappy:   5,
	domain.MoodCalm:    4,
	domain.MoodNeutral: 3,
	domain.MoodSad:     2,
	domain.MoodAnxious: 1,
	domain.MoodAngry:   1,
}

// lowMoodThreshold triggers the low-mood event at or below this score.
const lowMoodThreshold = 2

// EmotionInput carries a new mood entry.
type EmotionInput struct {
	UserID int64
	Mood   domain.Mood
	Note   string
}

// EmotionService records mood entries and serves per-day aggregates.
type EmotionService struct {
	emotions   repository.EmotionRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEmotionService builds the service.
func NewEmotionService(emotions repository.EmotionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *EmotionService {
	return &EmotionService{emotions: emotions, dispatcher: dispatcher, logger: logger}
}

// ScoreFor maps a mood to its numeric score.
func ScoreFor(mood domain.Mood) (int, bool) {
	score, ok := moodScores[mood]
	return score, ok
}

// Log stores a mood entry. Clients may only log for themselves;
// administrators may log on behalf of any user.
func (s *EmotionService) Log(ctx context.Context, caller *auth.Identity, input EmotionInput) (*domain.EmotionLog, error) {
	score, ok := ScoreFor(input.Mood)
	if !ok {
		return nil, apperrors.NewValidationError("unknown mood", map[string]any{"mood": input.Mood})
	}
	if input.UserID != caller.Subject && !caller.IsAdmin() {
		return nil, apperrors.NewForbidden("cannot log moods for another user")
	}

	log := &domain.EmotionLog{
		UserID:   input.UserID,
		Mood:     input.Mood,
		Score:    score,
		Note:     input.Note,
		LoggedAt: time.Now(),
	}
	if err := s.emotions.Create(ctx, log); err != nil {
		return nil, err
	}

	if score <= lowMoodThreshold {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLowMoodDetected,
			UserID:    log.UserID,
			Timestamp: time.Now(),
			Payload:   events.LowMoodDetectedPayload{LogID: log.ID, Mood: log.Mood, Score: log.Score},
		})
	}
	return log, nil
}

// ListByUser returns a user's mood entries, newest first.
func (s *EmotionService) ListByUser(ctx context.Context, userID int64) ([]*domain.EmotionLog, error) {
	return s.emotions.ListByUser(ctx, userID)
}

// Summary returns per-day averages for a user.
func (s *EmotionService) Summary(ctx context.Context, userID int64) ([]*domain.DaySummary, error) {
	return s.emotions.SummaryByDay(ctx, userID)
}

// Delete removes a mood entry.
func (s *EmotionService) Delete(ctx context.Context, id int64) error {
	return s.emotions.Delete(ctx, id)
}

// LogOwner resolves a mood entry's owner for route-level ownership checks.
func (s *EmotionService) LogOwner(ctx context.Context, id int64) (int64, error) {
	log, err := s.emotions.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return log.UserID, nil
}

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

// PeerAuthorizer is the slice of the inter-service client the goal service
// needs: a fail-closed answer about a user's existence, decided with the
// original caller's forwarded credential.
type PeerAuthorizer interface {
	UserExists(ctx context.Context, rawToken string, userID int64) bool
}

// GoalInput carries the mutable goal fields.
type GoalInput struct {
	UserID      int64
	Title       string
	Description string
	TargetDate  *time.Time
}

// GoalService coordinates goal CRUD with ownership rules.
type GoalService struct {
	goals      repository.GoalRepository
	peers      PeerAuthorizer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewGoalService builds the service.
func NewGoalService(goals repository.GoalRepository, peers PeerAuthorizer, dispatcher events.Dispatcher, logger *zap.Logger) *GoalService {
	return &GoalService{goals: goals, peers: peers, dispatcher: dispatcher, logger: logger}
}

// Create stores a goal. Clients may only create goals for themselves; an
// administrator may create goals for any user that the identity service
// confirms exists. A failed or unreachable existence check denies the
// request the same way a genuine authorization failure would.
func (s *GoalService) Create(ctx context.Context, caller *auth.Identity, input GoalInput) (*domain.Goal, error) {
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.UserID != caller.Subject {
		if !caller.IsAdmin() {
			return nil, apperrors.NewForbidden("cannot create goals for another user")
		}
		if !s.peers.UserExists(ctx, caller.RawToken, input.UserID) {
			return nil, apperrors.NewForbidden("cannot create goals for that user")
		}
	}

	goal := &domain.Goal{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Update rewrites title, description, and target date.
func (s *GoalService) Update(ctx context.Context, goalID int64, input GoalInput) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		goal.Title = input.Title
	}
	goal.Description = input.Description
	goal.TargetDate = input.TargetDate
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Complete marks the goal done and publishes the completion event.
func (s *GoalService) Complete(ctx context.Context, goalID int64) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Completed {
		return goal, nil
	}
	goal.Completed = true
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventGoalCompleted,
		UserID:    goal.UserID,
		Timestamp: time.Now(),
		Payload:   events.GoalCompletedPayload{GoalID: goal.ID, Title: goal.Title},
	})
	return goal, nil
}

// Get loads a single goal.
func (s *GoalService) Get(ctx context.Context, goalID int64) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, goalID)
}

// ListByUser returns a user's goals.
func (s *GoalService) ListByUser(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, goalID int64) error {
	return s.goals.Delete(ctx, goalID)
}

// GoalOwner resolves a goal's owner for route-level ownership checks.
func (s *GoalService) GoalOwner(ctx context.Context, goalID int64) (int64, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return 0, err
	}
	return goal.UserID, nil
}

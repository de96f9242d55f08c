package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bienestar-app/platform/internal/domain"
	"github.com/bienestar-app/platform/internal/events"
)

// In-memory repository fakes, one per aggregate.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

type fakeRoleRepo struct{}

func (fakeRoleRepo) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	switch name {
	case domain.RoleAdministrator:
		return &domain.Role{ID: 1, Name: name}, nil
	case domain.RoleClient:
		return &domain.Role{ID: 2, Name: name}, nil
	}
	return nil, pgx.ErrNoRows
}

func (fakeRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	return []*domain.Role{
		{ID: 1, Name: domain.RoleAdministrator},
		{ID: 2, Name: domain.RoleClient},
	}, nil
}

type fakeGoalRepo struct {
	mu     sync.Mutex
	nextID int64
	goals  map[int64]*domain.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{nextID: 1, goals: map[int64]*domain.Goal{}}
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal.ID = r.nextID
	r.nextID++
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	clone := *goal
	r.goals[goal.ID] = &clone
	return nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[goal.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *goal
	r.goals[goal.ID] = &clone
	return nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.goals, id)
	return nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id int64) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *goal
	return &clone, nil
}

func (r *fakeGoalRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Goal
	for _, goal := range r.goals {
		if goal.UserID == userID {
			clone := *goal
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeEmotionRepo struct {
	mu     sync.Mutex
	nextID int64
	logs   map[int64]*domain.EmotionLog
}

func newFakeEmotionRepo() *fakeEmotionRepo {
	return &fakeEmotionRepo{nextID: 1, logs: map[int64]*domain.EmotionLog{}}
}

func (r *fakeEmotionRepo) Create(_ context.Context, log *domain.EmotionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = r.nextID
	r.nextID++
	clone := *log
	r.logs[log.ID] = &clone
	return nil
}

func (r *fakeEmotionRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.logs, id)
	return nil
}

func (r *fakeEmotionRepo) GetByID(_ context.Context, id int64) (*domain.EmotionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *log
	return &clone, nil
}

func (r *fakeEmotionRepo) ListByUser(_ context.Context, userID int64) ([]*domain.EmotionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.EmotionLog
	for _, log := range r.logs {
		if log.UserID == userID {
			clone := *log
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeEmotionRepo) SummaryByDay(_ context.Context, userID int64) ([]*domain.DaySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buckets := map[time.Time]*domain.DaySummary{}
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		day := log.LoggedAt.Truncate(24 * time.Hour)
		summary, ok := buckets[day]
		if !ok {
			summary = &domain.DaySummary{Day: day}
			buckets[day] = summary
		}
		summary.AverageScore = (summary.AverageScore*float64(summary.Entries) + float64(log.Score)) / float64(summary.Entries+1)
		summary.Entries++
	}
	out := make([]*domain.DaySummary, 0, len(buckets))
	for _, summary := range buckets {
		out = append(out, summary)
	}
	return out, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

// stubPeer answers existence checks with a fixed verdict and records the
// forwarded token.
type stubPeer struct {
	exists    bool
	lastToken string
}

func (p *stubPeer) UserExists(_ context.Context, rawToken string, _ int64) bool {
	p.lastToken = rawToken
	return p.exists
}

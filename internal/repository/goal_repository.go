package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bienestar-app/platform/internal/domain"
)

// GoalRepository defines persistence access for wellness goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Goal, error)
}

type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository returns a Postgres-backed implementation.
func NewGoalRepository(pool *pgxpool.Pool) GoalRepository {
	return &goalRepository{pool: pool}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	const query = `
        INSERT INTO goals (user_id, title, description, target_date, completed)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetDate,
		goal.Completed,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
}

func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	const query = `
        UPDATE goals
        SET title=$1, description=$2, target_date=$3, completed=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		goal.Title,
		goal.Description,
		goal.TargetDate,
		goal.Completed,
		goal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *goalRepository) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	const query = `
        SELECT id, user_id, title, description, target_date, completed, created_at, updated_at
        FROM goals WHERE id=$1`

	var goal domain.Goal
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.TargetDate,
		&goal.Completed,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	const query = `
        SELECT id, user_id, title, description, target_date, completed, created_at, updated_at
        FROM goals WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Title,
			&goal.Description,
			&goal.TargetDate,
			&goal.Completed,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &goal)
	}
	return goals, rows.Err()
}

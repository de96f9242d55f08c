package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bienestar-app/platform/internal/domain"
)

// EmotionRepository defines persistence access for mood entries.
type EmotionRepository interface {
	Create(ctx context.Context, log *domain.EmotionLog) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.EmotionLog, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.EmotionLog, error)
	SummaryByDay(ctx context.Context, userID int64) ([]*domain.DaySummary, error)
}

type emotionRepository struct {
	pool *pgxpool.Pool
}

// NewEmotionRepository returns a Postgres-backed implementation.
func NewEmotionRepository(pool *pgxpool.Pool) EmotionRepository {
	return &emotionRepository{pool: pool}
}

func (r *emotionRepository) Create(ctx context.Context, log *domain.EmotionLog) error {
	const query = `
        INSERT INTO emotion_logs (user_id, mood, score, note, logged_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		log.UserID,
		log.Mood,
		log.Score,
		log.Note,
		log.LoggedAt,
	).Scan(&log.ID)
}

func (r *emotionRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM emotion_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *emotionRepository) GetByID(ctx context.Context, id int64) (*domain.EmotionLog, error) {
	const query = `
        SELECT id, user_id, mood, score, note, logged_at
        FROM emotion_logs WHERE id=$1`

	var log domain.EmotionLog
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&log.ID,
		&log.UserID,
		&log.Mood,
		&log.Score,
		&log.Note,
		&log.LoggedAt,
	); err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *emotionRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.EmotionLog, error) {
	const query = `
        SELECT id, user_id, mood, score, note, logged_at
        FROM emotion_logs WHERE user_id=$1 ORDER BY logged_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.EmotionLog
	for rows.Next() {
		var log domain.EmotionLog
		if err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Mood,
			&log.Score,
			&log.Note,
			&log.LoggedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}

func (r *emotionRepository) SummaryByDay(ctx context.Context, userID int64) ([]*domain.DaySummary, error) {
	const query = `
        SELECT date_trunc('day', logged_at) AS day, AVG(score), COUNT(*)
        FROM emotion_logs WHERE user_id=$1
        GROUP BY day ORDER BY day DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.DaySummary
	for rows.Next() {
		var summary domain.DaySummary
		if err := rows.Scan(&summary.Day, &summary.AverageScore, &summary.Entries); err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}

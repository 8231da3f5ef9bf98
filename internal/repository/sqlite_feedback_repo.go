package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"feedback-backend/internal/models"

	"github.com/google/uuid"
)

// Timestamps are stored as fixed-width UTC text so string order matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteFeedbackRepo stores feedback records in an embedded SQLite database.
type SQLiteFeedbackRepo struct {
	db *sql.DB
}

func NewSQLiteFeedbackRepo(db *sql.DB) *SQLiteFeedbackRepo {
	return &SQLiteFeedbackRepo{db: db}
}

func (r *SQLiteFeedbackRepo) Insert(ctx context.Context, record *models.FeedbackRecord) error {
	actions, err := json.Marshal(record.RecommendedActions)
	if err != nil {
		return fmt.Errorf("marshal actions: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO feedbacks (
            id, rating, review, user_response, summary, recommended_actions, timestamp, status
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		record.Rating,
		record.Review,
		record.UserResponse,
		record.Summary,
		string(actions),
		formatTime(record.Timestamp),
		string(record.Status),
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	record.ID = id
	return nil
}

func (r *SQLiteFeedbackRepo) FindRecent(ctx context.Context, limit int) ([]models.FeedbackRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rating, review, user_response, summary, recommended_actions, timestamp, status
         FROM feedbacks
         ORDER BY timestamp DESC, rowid DESC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	records := make([]models.FeedbackRecord, 0)
	for rows.Next() {
		var (
			rec       models.FeedbackRecord
			actions   string
			timestamp string
			status    string
		)
		if err := rows.Scan(&rec.ID, &rec.Rating, &rec.Review, &rec.UserResponse, &rec.Summary, &actions, &timestamp, &status); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(actions), &rec.RecommendedActions); err != nil {
			return nil, fmt.Errorf("decode actions for %s: %w", rec.ID, err)
		}
		if rec.Timestamp, err = time.Parse(sqliteTimeLayout, timestamp); err != nil {
			return nil, fmt.Errorf("parse timestamp for %s: %w", rec.ID, err)
		}
		rec.Status = models.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return records, nil
}

func (r *SQLiteFeedbackRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedbacks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return count, nil
}

func (r *SQLiteFeedbackRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedbacks WHERE timestamp >= ?`,
		formatTime(since),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recent feedback: %w", err)
	}
	return count, nil
}

func (r *SQLiteFeedbackRepo) RatingDistribution(ctx context.Context) (map[int]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rating, COUNT(*) FROM feedbacks GROUP BY rating ORDER BY rating`)
	if err != nil {
		return nil, fmt.Errorf("query rating distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[int]int64)
	for rows.Next() {
		var (
			rating int
			count  int64
		)
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("scan rating distribution: %w", err)
		}
		dist[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating distribution: %w", err)
	}
	return dist, nil
}

func (r *SQLiteFeedbackRepo) AverageRating(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, `SELECT AVG(rating) FROM feedbacks`).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *SQLiteFeedbackRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

package service

import (
	"context"
	"time"

	"feedback-backend/internal/enrichment"
	"feedback-backend/internal/models"
)

// FeedbackStore is the persistence contract the pipeline needs. Implementations
// must provide atomic inserts and consistent reads under concurrent use.
type FeedbackStore interface {
	Insert(ctx context.Context, record *models.FeedbackRecord) error
	FindRecent(ctx context.Context, limit int) ([]models.FeedbackRecord, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	RatingDistribution(ctx context.Context) (map[int]int64, error)
	AverageRating(ctx context.Context) (float64, error)
	Ping(ctx context.Context) error
}

// Enricher produces the three artifacts for a submission and never fails.
type Enricher interface {
	Enrich(ctx context.Context, rating int, review string) enrichment.Artifacts
}

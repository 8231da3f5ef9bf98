package service

import (
	"context"
	"math"
	"time"

	"feedback-backend/internal/models"
)

// RecentWindow is the trailing window counted as recent activity.
const RecentWindow = 24 * time.Hour

type StatsAggregator struct {
	store FeedbackStore
}

func NewStatsAggregator(store FeedbackStore) *StatsAggregator {
	return &StatsAggregator{store: store}
}

// Compute summarizes the stored corpus as of now. Records timestamped at or
// after now-24h count as recent.
func (a *StatsAggregator) Compute(ctx context.Context, now time.Time) (*models.StatsSnapshot, error) {
	total, err := a.store.Count(ctx)
	if err != nil {
		return nil, &StorageError{Op: "count feedback", Err: err}
	}

	dist, err := a.store.RatingDistribution(ctx)
	if err != nil {
		return nil, &StorageError{Op: "rating distribution", Err: err}
	}
	distribution := make(map[int]int64, len(dist))
	for rating, count := range dist {
		if rating < models.MinRating || rating > models.MaxRating || count == 0 {
			continue
		}
		distribution[rating] = count
	}

	var average float64
	if total > 0 {
		avg, err := a.store.AverageRating(ctx)
		if err != nil {
			return nil, &StorageError{Op: "average rating", Err: err}
		}
		if !math.IsNaN(avg) && !math.IsInf(avg, 0) {
			average = roundToTenth(avg)
		}
	}

	recent, err := a.store.CountSince(ctx, now.Add(-RecentWindow))
	if err != nil {
		return nil, &StorageError{Op: "count recent feedback", Err: err}
	}

	return &models.StatsSnapshot{
		TotalCount:         total,
		AverageRating:      average,
		RecentCount:        recent,
		RatingDistribution: distribution,
	}, nil
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

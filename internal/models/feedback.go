package models

import "time"

// Status tags the outcome recorded alongside a persisted feedback record.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusError is reserved for a future partial-failure flow; ingest never writes it.
	StatusError Status = "error"
)

const (
	MinRating       = 1
	MaxRating       = 5
	MaxReviewLength = 5000
)

type FeedbackRecord struct {
	ID                 string    `json:"id"`
	Rating             int       `json:"rating"`
	Review             string    `json:"review"`
	UserResponse       string    `json:"userResponse"`
	Summary            string    `json:"summary"`
	RecommendedActions []string  `json:"recommendedActions"`
	Timestamp          time.Time `json:"timestamp"`
	Status             Status    `json:"status"`
}

// SubmitResult is what the submitting client gets back. Summary and actions
// stay operator-side.
type SubmitResult struct {
	ID           string    `json:"id"`
	UserResponse string    `json:"userResponse"`
	Timestamp    time.Time `json:"timestamp"`
}

// StatsSnapshot is computed per request and never stored.
type StatsSnapshot struct {
	TotalCount         int64         `json:"totalCount"`
	AverageRating      float64       `json:"averageRating"`
	RecentCount        int64         `json:"recentCount"`
	RatingDistribution map[int]int64 `json:"ratingDistribution"`
}

// Package service holds the feedback ingest pipeline and the read-side
// statistics over stored feedback.
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"feedback-backend/internal/logger"
	"feedback-backend/internal/metrics"
	"feedback-backend/internal/models"
	"feedback-backend/internal/notify"
)

// MaxListLimit caps how many records a single list call returns.
const MaxListLimit = 1000

// SubmitInput is a raw submission. Nil fields mean the value was absent.
type SubmitInput struct {
	Rating *int
	Review *string
}

type FeedbackService struct {
	store    FeedbackStore
	enricher Enricher
	notifier notify.Notifier
	alertMax int
	now      func() time.Time
	log      logger.Logger
	metrics  *metrics.Metrics
}

type Option func(*FeedbackService)

// WithNotifier publishes an operator alert for each stored record whose
// rating is at or below maxRating.
func WithNotifier(n notify.Notifier, maxRating int) Option {
	return func(s *FeedbackService) {
		s.notifier = n
		s.alertMax = maxRating
	}
}

// WithClock overrides the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *FeedbackService) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *FeedbackService) { s.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *FeedbackService) { s.metrics = m }
}

func NewFeedbackService(store FeedbackStore, enricher Enricher, opts ...Option) *FeedbackService {
	s := &FeedbackService{
		store:    store,
		enricher: enricher,
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates, enriches and persists one submission. It returns a
// *ValidationError for bad input and a *StorageError when the insert fails;
// enrichment itself cannot fail.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitInput) (*models.SubmitResult, error) {
	rating, review, err := validate(in)
	if err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeInvalid)
		return nil, err
	}

	artifacts := s.enricher.Enrich(ctx, rating, review)

	record := &models.FeedbackRecord{
		Rating:             rating,
		Review:             review,
		UserResponse:       artifacts.UserResponse,
		Summary:            artifacts.Summary,
		RecommendedActions: artifacts.RecommendedActions,
		Timestamp:          s.now().UTC(),
		Status:             models.StatusSuccess,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeStorageError)
		s.log.Error(ctx, "failed to persist feedback", logger.Int("rating", rating), logger.Error(err))
		return nil, &StorageError{Op: "insert feedback", Err: err}
	}

	s.metrics.RecordSubmission(metrics.OutcomeAccepted)
	s.log.Info(ctx, "feedback stored",
		logger.String("id", record.ID),
		logger.Int("rating", rating),
		logger.Int("actions", len(record.RecommendedActions)),
	)
	s.publish(*record)

	return &models.SubmitResult{
		ID:           record.ID,
		UserResponse: record.UserResponse,
		Timestamp:    record.Timestamp,
	}, nil
}

// List returns up to limit records, newest first. A limit outside
// (0, MaxListLimit] is clamped to MaxListLimit.
func (s *FeedbackService) List(ctx context.Context, limit int) ([]models.FeedbackRecord, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	records, err := s.store.FindRecent(ctx, limit)
	if err != nil {
		return nil, &StorageError{Op: "list feedback", Err: err}
	}
	return records, nil
}

func validate(in SubmitInput) (int, string, error) {
	if in.Rating == nil || *in.Rating < models.MinRating || *in.Rating > models.MaxRating {
		return 0, "", &ValidationError{Field: "rating", Err: ErrInvalidRating}
	}
	if in.Review == nil {
		return 0, "", &ValidationError{Field: "review", Err: ErrReviewRequired}
	}
	review := strings.TrimSpace(*in.Review)
	if utf8.RuneCountInString(review) > models.MaxReviewLength {
		return 0, "", &ValidationError{Field: "review", Err: ErrReviewTooLong}
	}
	return *in.Rating, review, nil
}

// publish sends the operator alert in the background; failures are only logged.
func (s *FeedbackService) publish(record models.FeedbackRecord) {
	if s.notifier == nil || record.Rating > s.alertMax {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notify.PublishTimeout)
		defer cancel()
		if err := s.notifier.Publish(ctx, notify.FormatFeedbackAlert(record)); err != nil {
			s.log.Warn(ctx, "failed to publish feedback alert", logger.String("id", record.ID), logger.Error(err))
		}
	}()
}

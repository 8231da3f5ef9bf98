package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"feedback-backend/internal/logger"
	"feedback-backend/internal/service"
)

type FeedbackHandler struct {
	feedback  *service.FeedbackService
	stats     *service.StatsAggregator
	listLimit int
	now       func() time.Time
	log       logger.Logger
}

func NewFeedbackHandler(feedback *service.FeedbackService, stats *service.StatsAggregator, listLimit int, log logger.Logger) *FeedbackHandler {
	if listLimit <= 0 || listLimit > service.MaxListLimit {
		listLimit = service.MaxListLimit
	}
	return &FeedbackHandler{
		feedback:  feedback,
		stats:     stats,
		listLimit: listLimit,
		now:       time.Now,
		log:       log,
	}
}

type SubmitFeedbackRequest struct {
	Rating *int    `json:"rating"`
	Review *string `json:"review"`
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.feedback.Submit(r.Context(), service.SubmitInput{
		Rating: req.Rating,
		Review: req.Review,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, validationMessage(verr))
			return
		}
		h.log.Error(r.Context(), "error processing feedback", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to process feedback. Please try again.")
		return
	}

	writeData(w, http.StatusCreated, result)
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	limit := h.listLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	records, err := h.feedback.List(r.Context(), limit)
	if err != nil {
		h.log.Error(r.Context(), "error fetching feedback", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}
	writeData(w, http.StatusOK, records)
}

// --- GET /api/feedback/stats ---

func (h *FeedbackHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Compute(r.Context(), h.now())
	if err != nil {
		h.log.Error(r.Context(), "error fetching stats", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	writeData(w, http.StatusOK, stats)
}

func validationMessage(err *service.ValidationError) string {
	switch {
	case errors.Is(err, service.ErrInvalidRating):
		return "Rating must be between 1 and 5"
	case errors.Is(err, service.ErrReviewRequired):
		return "Review is required"
	case errors.Is(err, service.ErrReviewTooLong):
		return "Review must be less than 5000 characters"
	default:
		return err.Error()
	}
}

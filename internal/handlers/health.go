package handlers

import (
	"context"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// --- GET /health ---

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.store.Ping(ctx); err != nil {
		database = "disconnected"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}

// --- GET / ---

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Feedback System API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":         "/health",
			"submitFeedback": "POST /api/feedback",
			"getFeedback":    "GET /api/feedback",
			"getStats":       "GET /api/feedback/stats",
			"metrics":        "/metrics",
		},
	})
}

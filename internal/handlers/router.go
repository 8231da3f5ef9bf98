package handlers

import (
	"net/http"

	"feedback-backend/internal/metrics"
	customMiddleware "feedback-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Feedback *FeedbackHandler
	Health   *HealthHandler
	Metrics  *metrics.Metrics
	// AccessLog enables chi's request logger.
	AccessLog bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(customMiddleware.Metrics(cfg.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/", cfg.Health.Root)
	r.Get("/health", cfg.Health.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/feedback", cfg.Feedback.SubmitFeedback)
		r.Get("/feedback", cfg.Feedback.ListFeedback)
		r.Get("/feedback/stats", cfg.Feedback.GetStats)
	})

	r.NotFound(NotFound)
	return r
}

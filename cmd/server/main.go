package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-backend/internal/config"
	"feedback-backend/internal/database"
	"feedback-backend/internal/enrichment"
	"feedback-backend/internal/handlers"
	"feedback-backend/internal/llm"
	"feedback-backend/internal/logger"
	"feedback-backend/internal/metrics"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Get().Error(ctx, "invalid log level", logger.Error(err))
		os.Exit(1)
	}
	log := logger.Named("server")

	feedbackStore, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open feedback store", logger.String("driver", cfg.StoreDriver), logger.Error(err))
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New()

	generators := enrichment.NewGenerators(newGenerationClient(ctx, cfg, log),
		enrichment.WithCallTimeout(cfg.GenerationTimeout),
		enrichment.WithLogger(logger.Named("enrichment")),
		enrichment.WithMetrics(m),
	)
	feedbackService := service.NewFeedbackService(feedbackStore, enrichment.NewEngine(generators),
		service.WithNotifier(newNotifier(cfg), cfg.AlertMaxRating),
		service.WithLogger(logger.Named("feedback")),
		service.WithMetrics(m),
	)

	router := handlers.NewRouter(handlers.RouterConfig{
		Feedback:  handlers.NewFeedbackHandler(feedbackService, service.NewStatsAggregator(feedbackStore), cfg.ListLimit, logger.Named("handlers")),
		Health:    handlers.NewHealthHandler(feedbackStore),
		Metrics:   m,
		AccessLog: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(ctx, "feedback backend starting", logger.String("port", cfg.Port), logger.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "graceful shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "feedback backend stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (service.FeedbackStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "opened sqlite store", logger.String("path", cfg.SQLitePath))
		return repository.NewSQLiteFeedbackRepo(db), func() { _ = db.Close() }, nil
	default:
		conn, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "connected to mongodb", logger.String("db", cfg.DBName))

		repo := repository.NewFeedbackRepo(conn.Collection("feedbacks"))
		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Warn(ctx, "failed to create feedback indexes", logger.Error(err))
		}
		return repo, func() { _ = conn.Close(context.Background()) }, nil
	}
}

// newGenerationClient returns nil when no credentials are configured, in
// which case every artifact uses its local fallback.
func newGenerationClient(ctx context.Context, cfg *config.Config, log logger.Logger) llm.Client {
	client, err := llm.NewClient(llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		log.Warn(ctx, "generation disabled, serving fallback artifacts only", logger.Error(err))
		return nil
	}
	return client
}

func newNotifier(cfg *config.Config) notify.Notifier {
	var notifiers notify.Multi
	if cfg.SlackWebhookURL != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(cfg.SlackWebhookURL, nil))
	}
	if cfg.ResendAPIKey != "" && cfg.AlertEmail != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.FromEmail, cfg.AlertEmail))
	}
	if len(notifiers) == 0 {
		return notify.NewLogNotifier(logger.Named("notify"))
	}
	return notifiers
}

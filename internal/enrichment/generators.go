// Package enrichment turns a rating and review into the three artifacts
// stored with every feedback record: a reply to the user, an operator
// summary and a list of recommended actions.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"feedback-backend/internal/llm"
	"feedback-backend/internal/logger"
	"feedback-backend/internal/metrics"
)

const (
	ArtifactUserReply = "user_reply"
	ArtifactSummary   = "summary"
	ArtifactActions   = "recommended_actions"
)

var errBlankOutput = errors.New("generator returned blank text")

// Generators produces each artifact with a single bounded generation call
// and a deterministic local fallback. None of its methods fail.
type Generators struct {
	client  llm.Client
	timeout time.Duration
	log     logger.Logger
	metrics *metrics.Metrics
}

type Option func(*Generators)

// WithCallTimeout bounds each generation call. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(g *Generators) { g.timeout = d }
}

func WithLogger(l logger.Logger) Option {
	return func(g *Generators) { g.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generators) { g.metrics = m }
}

func NewGenerators(client llm.Client, opts ...Option) *Generators {
	g := &Generators{
		client: client,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client != nil {
		g.client = llm.WithTimeout(g.client, g.timeout)
	}
	return g
}

// UserReply returns a short acknowledgement calibrated to the rating.
func (g *Generators) UserReply(ctx context.Context, rating int, review string) string {
	start := time.Now()
	reviewText := strings.TrimSpace(review)
	if reviewText == "" {
		reviewText = noReviewPlaceholder
	}

	text, err := g.generate(ctx, userReplyPrompt(rating, reviewText))
	if err != nil {
		g.fallback(ctx, ArtifactUserReply, start, err)
		return fallbackUserReply(rating)
	}
	g.generated(ArtifactUserReply, start)
	return text
}

// Summary condenses the review to one sentence. Empty and very short
// reviews are answered locally without a generation call.
func (g *Generators) Summary(ctx context.Context, review string) string {
	start := time.Now()
	reviewText := strings.TrimSpace(review)

	if reviewText == "" {
		g.skipped(ArtifactSummary, start)
		return emptySummary
	}
	if utf8.RuneCountInString(reviewText) < minSummarizableLen {
		g.skipped(ArtifactSummary, start)
		return reviewText
	}

	text, err := g.generate(ctx, summaryPrompt(reviewText))
	if err != nil {
		g.fallback(ctx, ArtifactSummary, start, err)
		return fallbackSummary(reviewText)
	}
	g.generated(ArtifactSummary, start)
	return text
}

// RecommendedActions asks for a JSON array of next steps and falls back to
// a rating-tiered static list when the call or the parse fails.
func (g *Generators) RecommendedActions(ctx context.Context, rating int, review string) []string {
	start := time.Now()
	reviewText := strings.TrimSpace(review)
	if reviewText == "" {
		reviewText = noReviewPlaceholder
	}

	text, err := g.generate(ctx, recommendedActionsPrompt(rating, reviewText))
	if err != nil {
		g.fallback(ctx, ArtifactActions, start, err)
		return fallbackActions(rating)
	}
	actions, err := parseActions(text)
	if err != nil {
		g.fallback(ctx, ArtifactActions, start, err)
		return fallbackActions(rating)
	}
	g.generated(ArtifactActions, start)
	return actions
}

// generate makes the single external call for an artifact and returns the
// trimmed text. A panicking client counts as a failed call.
func (g *Generators) generate(ctx context.Context, prompt string) (text string, err error) {
	if g.client == nil {
		return "", errors.New("no generation client configured")
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("generation client panicked: %v", r)
		}
	}()

	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(raw)
	if text == "" {
		return "", errBlankOutput
	}
	return text, nil
}

func (g *Generators) fallback(ctx context.Context, artifact string, start time.Time, err error) {
	g.log.Warn(ctx, "artifact generation failed, using fallback",
		logger.String("artifact", artifact),
		logger.Error(err),
	)
	g.metrics.RecordGeneration(artifact, metrics.ResultFallback, time.Since(start))
}

func (g *Generators) generated(artifact string, start time.Time) {
	g.metrics.RecordGeneration(artifact, metrics.ResultGenerated, time.Since(start))
}

func (g *Generators) skipped(artifact string, start time.Time) {
	g.metrics.RecordGeneration(artifact, metrics.ResultSkipped, time.Since(start))
}

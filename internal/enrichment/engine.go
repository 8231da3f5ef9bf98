package enrichment

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Artifacts is the complete enrichment of one submission.
type Artifacts struct {
	UserResponse       string
	Summary            string
	RecommendedActions []string
}

type Engine struct {
	generators *Generators
}

func NewEngine(generators *Generators) *Engine {
	return &Engine{generators: generators}
}

// Enrich runs the three generators concurrently and waits for all of them.
// Every generator resolves to a value on its own, so the join never sees
// an error and one slow artifact never cancels the others.
func (e *Engine) Enrich(ctx context.Context, rating int, review string) Artifacts {
	var (
		out Artifacts
		g   errgroup.Group
	)

	g.Go(func() error {
		out.UserResponse = e.generators.UserReply(ctx, rating, review)
		return nil
	})
	g.Go(func() error {
		out.Summary = e.generators.Summary(ctx, review)
		return nil
	})
	g.Go(func() error {
		out.RecommendedActions = e.generators.RecommendedActions(ctx, rating, review)
		return nil
	})

	_ = g.Wait()
	return out
}

// Package llm is the boundary to the hosted text-generation service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultOpenAIModel    = "gpt-4o-mini"

	externalHTTPTimeout = 30 * time.Second
)

var (
	ErrEmptyResponse = errors.New("empty generation response")
	ErrMissingAPIKey = errors.New("missing generation API key")
	ErrUnknownVendor = errors.New("unknown generation provider")
)

// Client produces text for a prompt. Implementations make exactly one
// attempt per call; callers own retry and fallback policy.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config carries endpoint and credentials explicitly so nothing reads
// process state at call time.
type Config struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient selects an implementation by provider name.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, cfg.Provider)
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: externalHTTPTimeout}
	}
	switch cfg.Provider {
	case "", "anthropic":
		return NewAnthropicClient(cfg), nil
	case "openai":
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVendor, cfg.Provider)
	}
}

type timeoutClient struct {
	next    Client
	timeout time.Duration
}

// WithTimeout bounds every Generate call on next by d.
func WithTimeout(next Client, d time.Duration) Client {
	if d <= 0 {
		return next
	}
	return &timeoutClient{next: next, timeout: d}
}

func (c *timeoutClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("generation client panicked: %v", r)}
			}
		}()
		text, err := c.next.Generate(ctx, prompt)
		done <- result{text: text, err: err}
	}()

	// Some transports ignore cancellation; don't wait on them past the deadline.
	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("generation timed out after %s: %w", c.timeout, ctx.Err())
	}
}

// Package notify delivers operator alerts about new feedback.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedback-backend/internal/models"
)

// PublishTimeout bounds a single background publish.
const PublishTimeout = 10 * time.Second

// Notifier defines the interface for publishing messages to an operator channel.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// Multi publishes to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Publish(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Publish(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FormatFeedbackAlert renders a stored record for operators.
func FormatFeedbackAlert(record models.FeedbackRecord) string {
	var b strings.Builder
	b.WriteString("📝 *New Feedback Received*\n")
	fmt.Fprintf(&b, "Rating: %s (%d/5)\n", strings.Repeat("⭐", record.Rating), record.Rating)
	fmt.Fprintf(&b, "Summary: %s\n", record.Summary)
	if len(record.RecommendedActions) > 0 {
		b.WriteString("Recommended actions:\n")
		for _, action := range record.RecommendedActions {
			fmt.Fprintf(&b, "• %s\n", action)
		}
	}
	if record.ID != "" {
		fmt.Fprintf(&b, "ID: `%s`", record.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

package notify

import (
	"context"

	"feedback-backend/internal/logger"
)

// LogNotifier writes alerts to the log. It is the default when no real
// channel is configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(l logger.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	n.log.Info(ctx, "feedback alert", logger.String("message", message))
	return nil
}

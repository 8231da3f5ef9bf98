package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"
)

// SlackNotifier posts alerts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewSlackNotifier(webhookURL string, httpClient *http.Client) *SlackNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: PublishTimeout}
	}
	return &SlackNotifier{webhookURL: webhookURL, httpClient: httpClient}
}

func (n *SlackNotifier) Publish(ctx context.Context, message string) error {
	msg := &slack.WebhookMessage{
		Text: message,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, message, false, false), nil, nil),
		}},
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return fmt.Errorf("slack webhook: %w", err)
	}
	return nil
}

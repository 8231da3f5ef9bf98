package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
)

const alertSubject = "New customer feedback"

// EmailNotifier sends alerts through Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

func NewEmailNotifier(apiKey, from string, to ...string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, message string) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: alertSubject,
		Text:    message,
		Html:    "<pre style=\"font-family: sans-serif\">" + html.EscapeString(strings.ReplaceAll(message, "*", "")) + "</pre>",
	}
	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	return nil
}

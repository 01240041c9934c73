package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails using the Resend API.
type ResendSender struct {
	client *resend.Client
	apiKey string
	from   string
}

// NewResendSender creates a new Resend email sender.
func NewResendSender(apiKey, from string, timeout time.Duration) *ResendSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendSender{
		client: resend.NewCustomClient(&http.Client{Timeout: timeout}, apiKey),
		apiKey: apiKey,
		from:   from,
	}
}

func (s *ResendSender) Provider() string { return "resend" }

func (s *ResendSender) IsConfigured() bool {
	return s.apiKey != "" && s.from != ""
}

// Send sends an email using the Resend API.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	from := msg.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}

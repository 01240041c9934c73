// Package email provides the outbound mail transport with pluggable providers.
package email

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"

	"go-contact-relay/config"
)

var (
	// ErrNotConfigured is returned when the relay credentials are absent.
	ErrNotConfigured = errors.New("email transport is not configured")
	// ErrHandshake is returned when the relay rejects the connection or the
	// credentials while the transport is being verified.
	ErrHandshake = errors.New("email transport verification failed")
)

// Message is one formatted email ready for delivery.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string // Plain text alternative, optional
}

// Sender is the interface for email providers.
type Sender interface {
	// Send delivers msg with a single attempt.
	Send(ctx context.Context, msg Message) error
	// IsConfigured reports whether the provider has the credentials it needs.
	IsConfigured() bool
	// Provider names the backing implementation.
	Provider() string
}

// Verifier is implemented by senders that can check connectivity and
// credentials ahead of the first message.
type Verifier interface {
	Verify(ctx context.Context) error
}

// NewSender builds the sender selected by cfg.EmailProvider.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderSMTP, "":
		return NewSMTPSender(SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPassword,
			Timeout:  cfg.SendTimeout,
		}), nil
	case config.ProviderResend:
		return NewResendSender(cfg.EmailPassword, FormatAddress(cfg.SenderName, cfg.SMTPFromEmail), cfg.SendTimeout), nil
	case config.ProviderLog:
		return NewLogSender(nil), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

// FormatAddress renders an RFC 5322 address with an optional display name.
func FormatAddress(name, addr string) string {
	if addr == "" {
		return ""
	}
	return (&netmail.Address{Name: name, Address: addr}).String()
}

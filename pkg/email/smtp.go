package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPOptions configures the SMTP relay connection
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPSender delivers through an authenticated SMTP relay (Gmail by default).
//
// The go-mail client is built and verified lazily on first use and then
// shared by every request. A failed verification leaves it unset so the
// next call tries again. Sends on the shared client are serialized; waiting
// for a turn counts against the caller's context. Every connection carries
// a deadline, so a relay that accepts TCP and never answers cannot hold
// the turn past the send timeout.
type SMTPSender struct {
	opts SMTPOptions

	// slot holds one token while a caller owns client
	slot   chan struct{}
	client *mail.Client
}

// NewSMTPSender creates a sender; no network activity happens until the first Send or Verify.
func NewSMTPSender(opts SMTPOptions) *SMTPSender {
	if opts.Port == 0 {
		opts.Port = 587
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &SMTPSender{opts: opts, slot: make(chan struct{}, 1)}
}

func (s *SMTPSender) Provider() string { return "smtp" }

// IsConfigured checks if the sender has a relay host and both credentials
func (s *SMTPSender) IsConfigured() bool {
	return s.opts.Host != "" && s.opts.Username != "" && s.opts.Password != ""
}

// Verify dials the relay and authenticates without sending anything.
func (s *SMTPSender) Verify(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	_, err := s.acquire(ctx)
	return err
}

// Send sends msg as multipart/alternative when a text body is present.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}

	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	client, err := s.acquire(ctx)
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return s.redact(fmt.Errorf("smtp: failed to send email to %s: %w", msg.To, err))
	}
	return nil
}

func (s *SMTPSender) lock(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp: waiting for relay connection: %w", ctx.Err())
	}
}

func (s *SMTPSender) unlock() {
	<-s.slot
}

// acquire returns the verified client, building it if needed. Caller holds the slot.
func (s *SMTPSender) acquire(ctx context.Context) (*mail.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	opts := []mail.Option{
		mail.WithPort(s.opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.opts.Username),
		mail.WithPassword(s.opts.Password),
		mail.WithTimeout(s.opts.Timeout),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithDialContextFunc(s.dial),
	}
	if s.opts.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(s.opts.Host, opts...)
	if err != nil {
		return nil, s.redact(fmt.Errorf("%w: %v", ErrHandshake, err))
	}

	if err := client.DialWithContext(ctx); err != nil {
		return nil, s.redact(fmt.Errorf("%w: %v", ErrHandshake, err))
	}
	if err := client.Close(); err != nil {
		return nil, s.redact(fmt.Errorf("%w: %v", ErrHandshake, err))
	}

	s.client = client
	return client, nil
}

// dial opens the relay connection with a hard deadline taken from ctx.
// Port 465 speaks implicit TLS, which the custom dialer has to set up itself.
func (s *SMTPSender) dial(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.opts.Timeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if s.opts.Port != 465 {
		return conn, nil
	}
	tlsConn := tls.Client(conn, &tls.Config{ServerName: s.opts.Host, MinVersion: tls.VersionTLS12})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// redact keeps the relay password out of error text that may reach a response body
func (s *SMTPSender) redact(err error) error {
	if err == nil || s.opts.Password == "" || !strings.Contains(err.Error(), s.opts.Password) {
		return err
	}
	redacted := errors.New(strings.ReplaceAll(err.Error(), s.opts.Password, "[REDACTED]"))
	if errors.Is(err, ErrHandshake) {
		return fmt.Errorf("%w: %v", ErrHandshake, redacted)
	}
	return redacted
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("smtp: invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: invalid reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()

	if msg.Text != "" {
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	} else {
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}

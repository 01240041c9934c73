package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/metrics"
)

const (
	kindOperator       = "operator"
	kindAcknowledgment = "acknowledgment"
)

// DispatchReport records what happened to each message of a submission
type DispatchReport struct {
	OperatorErr             error
	AcknowledgmentAttempted bool
	AcknowledgmentErr       error
}

// ContactDispatcher sends formatted messages one at a time, operator first.
type ContactDispatcher struct {
	sender  email.Sender
	timeout time.Duration
	logger  *slog.Logger
}

func NewContactDispatcher(sender email.Sender, timeout time.Duration, logger *slog.Logger) *ContactDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactDispatcher{sender: sender, timeout: timeout, logger: logger}
}

// Dispatch attempts the acknowledgment only after the operator message went out.
func (d *ContactDispatcher) Dispatch(ctx context.Context, msgs *FormattedMessages) DispatchReport {
	var report DispatchReport

	if !d.sender.IsConfigured() {
		report.OperatorErr = email.ErrNotConfigured
		return report
	}

	if report.OperatorErr = d.send(ctx, kindOperator, msgs.Operator); report.OperatorErr != nil {
		return report
	}

	if msgs.Acknowledgment != nil {
		report.AcknowledgmentAttempted = true
		report.AcknowledgmentErr = d.send(ctx, kindAcknowledgment, *msgs.Acknowledgment)
	}
	return report
}

func (d *ContactDispatcher) send(ctx context.Context, kind string, msg email.Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(ctx, msg)
	metrics.DispatchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EmailsTotal.WithLabelValues(kind, "failed").Inc()
		d.logger.WarnContext(ctx, "email dispatch failed",
			"kind", kind,
			"provider", d.sender.Provider(),
			"error", err,
		)
		return err
	}

	metrics.EmailsTotal.WithLabelValues(kind, "sent").Inc()
	d.logger.InfoContext(ctx, "email dispatched",
		"kind", kind,
		"provider", d.sender.Provider(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// classifyTransportError maps a transport error onto the failure taxonomy
func classifyTransportError(err error) domain.FailureKind {
	if errors.Is(err, email.ErrNotConfigured) || errors.Is(err, email.ErrHandshake) {
		return domain.FailureConfiguration
	}
	return domain.FailureDelivery
}

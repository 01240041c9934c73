package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-contact-relay/config"
	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// ContactOptions configures the contact pipeline
type ContactOptions struct {
	SiteName           string
	FromEmail          string
	OperatorEmail      string
	SendAcknowledgment bool
	Location           *time.Location
	Business           config.BusinessProfile
	SendTimeout        time.Duration
	Logger             *slog.Logger
	Now                func() time.Time
}

// ContactOptionsFromConfig resolves the timezone and copies the pipeline settings.
func ContactOptionsFromConfig(cfg *config.Config) (ContactOptions, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return ContactOptions{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	return ContactOptions{
		SiteName:           cfg.SenderName,
		FromEmail:          cfg.SMTPFromEmail,
		OperatorEmail:      cfg.OperatorEmail,
		SendAcknowledgment: cfg.SendAcknowledgment,
		Location:           loc,
		Business:           cfg.Business,
		SendTimeout:        cfg.SendTimeout,
	}, nil
}

type contactUsecase struct {
	sender        email.Sender
	operatorEmail string
	validator     *ContactValidator
	formatter     *ContactFormatter
	dispatcher    *ContactDispatcher
	logger        *slog.Logger
	now           func() time.Time
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender email.Sender, validate *validator.Validate, opts ContactOptions) domain.ContactUsecase {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "contact")

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &contactUsecase{
		sender:        sender,
		operatorEmail: opts.OperatorEmail,
		validator:     NewContactValidator(validate),
		formatter:     NewContactFormatter(opts),
		dispatcher:    NewContactDispatcher(sender, opts.SendTimeout, logger),
		logger:        logger,
		now:           now,
	}
}

// SubmitContact runs received -> validated -> formatted -> dispatched -> succeeded,
// stopping in failed(kind) on the first problem.
func (uc *contactUsecase) SubmitContact(ctx context.Context, payload map[string]any) (*domain.ContactResult, error) {
	sub, err := uc.validator.Validate(payload)
	if err != nil {
		return nil, uc.fail(ctx, domain.StateReceived, asContactError(err, domain.FailureValidation))
	}
	log := uc.logger.With("inquiry_type", sub.InquiryType)

	// Checked before formatting: whether an acknowledgment exists depends on a working transport.
	if !uc.sender.IsConfigured() || uc.operatorEmail == "" {
		return nil, uc.fail(ctx, domain.StateValidated, &domain.ContactError{
			Kind:    domain.FailureConfiguration,
			Message: "email transport is not configured",
			Err:     email.ErrNotConfigured,
		})
	}

	submittedAt := uc.now()
	msgs, err := uc.formatter.Format(sub, submittedAt)
	if err != nil {
		return nil, uc.fail(ctx, domain.StateValidated, &domain.ContactError{
			Kind:    domain.FailureConfiguration,
			Message: "failed to format notification",
			Err:     err,
		})
	}

	report := uc.dispatcher.Dispatch(ctx, msgs)
	if report.OperatorErr != nil {
		return nil, uc.fail(ctx, domain.StateFormatted, &domain.ContactError{
			Kind:    classifyTransportError(report.OperatorErr),
			Message: "failed to send operator notification",
			Err:     report.OperatorErr,
		})
	}

	result := &domain.ContactResult{
		State:            domain.StateSucceeded,
		SubmittedAt:      submittedAt,
		OperatorNotified: true,
	}

	if report.AcknowledgmentAttempted {
		if report.AcknowledgmentErr != nil {
			result.AcknowledgmentErr = report.AcknowledgmentErr
			log.WarnContext(ctx, "acknowledgment not delivered; operator was notified",
				"error", report.AcknowledgmentErr,
			)
		} else {
			result.AcknowledgmentSent = true
			result.CustomerEmail = sub.Email
		}
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	log.InfoContext(ctx, "contact submission processed",
		"from_state", domain.StateDispatched,
		"state", result.State,
		"acknowledged", result.AcknowledgmentSent,
	)
	return result, nil
}

func asContactError(err error, kind domain.FailureKind) *domain.ContactError {
	var cerr *domain.ContactError
	if errors.As(err, &cerr) {
		return cerr
	}
	return &domain.ContactError{Kind: kind, Message: err.Error(), Err: err}
}

func (uc *contactUsecase) fail(ctx context.Context, from domain.PipelineState, cerr *domain.ContactError) error {
	attrs := []any{
		"from_state", from,
		"state", domain.StateFailed,
		"kind", cerr.Kind,
		"reason", cerr.Message,
	}

	switch cerr.Kind {
	case domain.FailureValidation:
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeValidation).Inc()
		uc.logger.InfoContext(ctx, "contact submission rejected", attrs...)
	case domain.FailureConfiguration:
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeConfiguration).Inc()
		uc.logger.ErrorContext(ctx, "contact pipeline misconfigured", append(attrs, "error", cerr.Err)...)
	default:
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeDelivery).Inc()
		uc.logger.ErrorContext(ctx, "contact delivery failed", append(attrs, "error", cerr.Err)...)
	}
	return cerr
}

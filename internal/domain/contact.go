package domain

import (
	"context"
	"fmt"
	"time"

	"go-contact-relay/pkg/apperror"
)

// ContactFields lists the required payload keys in the order they are reported
var ContactFields = []string{"name", "email", "phone", "inquiryType", "message"}

// ContactSubmission is a validated contact form payload.
// It lives for one request and is never stored.
type ContactSubmission struct {
	Name        string `json:"name" validate:"not_blank"`
	Email       string `json:"email" validate:"contact_email"`
	Phone       string `json:"phone" validate:"ten_digit_phone"`
	InquiryType string `json:"inquiryType" validate:"not_blank"`
	Message     string `json:"message" validate:"not_blank"`

	// PhoneDigits is Phone with every non-digit removed
	PhoneDigits string `json:"-" validate:"-"`
}

// ContactRequest documents the POST /api/contact body
type ContactRequest struct {
	Name        string `json:"name" example:"Asha Rao"`
	Email       string `json:"email" example:"asha@example.com"`
	Phone       string `json:"phone" example:"98765 43210"`
	InquiryType string `json:"inquiryType" example:"product"`
	Message     string `json:"message" example:"Please send pricing."`
}

// FieldError describes one rejected payload field
type FieldError = apperror.FieldError

// PipelineState tracks a submission through the pipeline
type PipelineState string

const (
	StateReceived   PipelineState = "received"
	StateValidated  PipelineState = "validated"
	StateFormatted  PipelineState = "formatted"
	StateDispatched PipelineState = "dispatched"
	StateSucceeded  PipelineState = "succeeded"
	StateFailed     PipelineState = "failed"
)

// FailureKind separates client mistakes from operator and relay problems
type FailureKind string

const (
	FailureValidation    FailureKind = "validation"
	FailureConfiguration FailureKind = "configuration"
	FailureDelivery      FailureKind = "delivery"
)

// ContactError is the terminal Failed(kind) state of a submission
type ContactError struct {
	Kind    FailureKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *ContactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ContactError) Unwrap() error {
	return e.Err
}

// ContactResult is the terminal Succeeded state of a submission
type ContactResult struct {
	State              PipelineState
	SubmittedAt        time.Time
	OperatorNotified   bool
	AcknowledgmentSent bool
	// AcknowledgmentErr is kept for diagnostics; it never fails the submission
	AcknowledgmentErr error
	// CustomerEmail is set only when the acknowledgment reached the submitter
	CustomerEmail string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates the raw payload, notifies the operator and
	// optionally acknowledges the submitter.
	SubmitContact(ctx context.Context, payload map[string]any) (*ContactResult, error)
}

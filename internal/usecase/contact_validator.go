package usecase

import (
	"fmt"
	"strings"

	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ContactValidator turns an untyped payload into a ContactSubmission.
//
// Stages run in order (presence, type, shape) and stop at the first stage
// that fails. Within a stage every offending field is reported.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator expects a validator with the pkg/validation tags
// registered; nil builds one.
func NewContactValidator(validate *validator.Validate) *ContactValidator {
	if validate == nil {
		validate = validation.New()
	}
	return &ContactValidator{validate: validate}
}

// Validate never mutates payload.
func (v *ContactValidator) Validate(payload map[string]any) (*domain.ContactSubmission, error) {
	if missing := missingFields(payload); len(missing) > 0 {
		return nil, validationError(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			fieldErrors(missing, "%s is required"),
		)
	}

	if wrong := nonStringFields(payload); len(wrong) > 0 {
		return nil, validationError(
			fmt.Sprintf("Invalid data types provided: %s", strings.Join(wrong, ", ")),
			fieldErrors(wrong, "%s must be text"),
		)
	}

	sub := &domain.ContactSubmission{
		Name:        payload["name"].(string),
		Email:       payload["email"].(string),
		Phone:       payload["phone"].(string),
		InquiryType: payload["inquiryType"].(string),
		Message:     payload["message"].(string),
	}

	if err := v.validate.Struct(sub); err != nil {
		fields := validation.FormatValidationErrors(err)
		return nil, validationError(validation.JoinMessages(fields), fields)
	}

	sub.PhoneDigits = validation.NormalizePhone(sub.Phone)
	return sub, nil
}

// missingFields reports absent, null and blank-string fields
func missingFields(payload map[string]any) []string {
	var missing []string
	for _, f := range domain.ContactFields {
		val, ok := payload[f]
		if !ok || val == nil {
			missing = append(missing, f)
			continue
		}
		if s, isString := val.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

func nonStringFields(payload map[string]any) []string {
	var wrong []string
	for _, f := range domain.ContactFields {
		if _, ok := payload[f].(string); !ok {
			wrong = append(wrong, f)
		}
	}
	return wrong
}

func fieldErrors(fields []string, format string) []domain.FieldError {
	out := make([]domain.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, domain.FieldError{
			Field:   f,
			Message: fmt.Sprintf(format, validation.FieldLabel(f)),
		})
	}
	return out
}

func validationError(message string, fields []domain.FieldError) *domain.ContactError {
	return &domain.ContactError{
		Kind:    domain.FailureValidation,
		Message: message,
		Fields:  fields,
	}
}

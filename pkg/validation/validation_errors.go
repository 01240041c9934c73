package validation

import (
	"errors"
	"fmt"
	"strings"

	"go-contact-relay/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":        "Name",
	"email":       "Email",
	"phone":       "Phone",
	"inquiryType": "Inquiry type",
	"message":     "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly field errors
func FormatValidationErrors(err error) []apperror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []apperror.FieldError{{Message: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:   e.Field(),
			Message: formatSingleError(e),
		})
	}
	return fields
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := FieldLabel(e.Field())

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s is required", label)

	case "contact_email", "email":
		return "Please enter a valid email address"

	case "ten_digit_phone":
		return fmt.Sprintf("Please enter a valid %d-digit phone number", PhoneDigits)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// FieldLabel returns the user-friendly label for a field
func FieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

// JoinMessages flattens field errors into one sentence for the error body
func JoinMessages(fields []apperror.FieldError) string {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

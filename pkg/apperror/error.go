package apperror

import "net/http"

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches operator-facing diagnostics to the response body
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation is a 400 carrying the individual field problems
func Validation(message string, fields []FieldError, err error) *AppError {
	appErr := New(http.StatusBadRequest, message, err)
	appErr.Fields = fields
	return appErr
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

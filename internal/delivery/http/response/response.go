package response

import (
	"go-contact-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response.
// Successful bodies carry Message, failed ones carry Error.
type Response struct {
	Message       string                `json:"message,omitempty"`
	CustomerEmail string                `json:"customerEmail,omitempty"`
	Error         string                `json:"error,omitempty"`
	Details       string                `json:"details,omitempty"`
	Fields        []apperror.FieldError `json:"fields,omitempty"`
	RequestID     string                `json:"request_id,omitempty"`
}

// Success sends a success response; customerEmail is omitted when empty
func Success(c *gin.Context, code int, message string, customerEmail string) {
	c.JSON(code, Response{
		Message:       message,
		CustomerEmail: customerEmail,
		RequestID:     requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Error:     message,
		RequestID: requestID(c),
	})
}

// AppError renders an *apperror.AppError including its details and fields
func AppError(c *gin.Context, err *apperror.AppError) {
	c.JSON(err.Code, Response{
		Error:     err.Message,
		Details:   err.Details,
		Fields:    err.Fields,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

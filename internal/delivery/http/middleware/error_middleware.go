package middleware

import (
	"errors"
	"net/http"

	"go-contact-relay/internal/delivery/http/response"
	"go-contact-relay/pkg/apperror"
	"go-contact-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.ErrorContext(c.Request.Context(), "request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"error", appErr.Err,
				)
			}
			response.AppError(c, appErr)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.ErrorContext(c.Request.Context(), "internal server error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

// MethodNotAllowed answers requests whose path exists under another method
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.AppError(c, apperror.MethodNotAllowed())
	}
}

// NotFound answers unknown routes with the JSON error shape
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.AppError(c, apperror.NotFound("Not found"))
	}
}

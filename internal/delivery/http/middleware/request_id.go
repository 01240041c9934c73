package middleware

import (
	"time"

	"go-contact-relay/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing a well formed inbound one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("RequestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
// Request bodies are not logged; they carry personal data.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqID, _ := c.Get("RequestID")
		logger.Log.InfoContext(c.Request.Context(), "http request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

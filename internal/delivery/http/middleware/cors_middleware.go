package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for the marketing sites.
//
// Only origins in allowed receive CORS headers. Localhost origins are
// dropped when production is true.
func CORSMiddleware(allowed []string, production bool) gin.HandlerFunc {
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(o, "/")
		if production && isLocalOrigin(o) {
			continue
		}
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Empty origin (same-origin or server-to-server requests) - allow
		isAllowed := origin == "" || origins[origin]

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, X-Request-ID, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400") // 24 hours
		}

		// Vary header to ensure caches differentiate by Origin
		c.Header("Vary", "Origin")

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}

func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")
}

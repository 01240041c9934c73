package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-contact-relay/internal/delivery/http/middleware"
	"go-contact-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_InMemory(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limit:     3,
		Window:    time.Hour,
		KeyPrefix: "rl:test:inmemory:",
	}))
	r.POST("/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = ip + ":4000"
		return serve(r, req)
	}

	for i := 0; i < 3; i++ {
		w := post("198.51.100.1")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}

	w := post("198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please try again later."}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Other clients keep their own budget
	assert.Equal(t, http.StatusOK, post("198.51.100.2").Code)
}

func TestRateLimitMiddleware_RedisUnavailableFallsBack(t *testing.T) {
	// Nothing listens on this port; every Eval fails
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limit:     1,
		Window:    time.Hour,
		KeyPrefix: "rl:test:fallback:",
		Redis:     func() *goredis.Client { return client },
	}))
	r.POST("/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/contact", nil)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, req).Code)
}

func TestRateLimitStore(t *testing.T) {
	assert.Equal(t, "memory", middleware.RateLimitStore(nil)())
	assert.Equal(t, "memory", middleware.RateLimitStore(func(context.Context) error {
		return errors.New("connection refused")
	})())
	assert.Equal(t, "redis", middleware.RateLimitStore(func(context.Context) error { return nil })())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://gurujifoils.com/", "http://localhost:3000"}, true))
	r.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", origin)
		return serve(r, req)
	}

	w := preflight("https://gurujifoils.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://gurujifoils.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	// localhost is dropped in production
	assert.Equal(t, http.StatusForbidden, preflight("http://localhost:3000").Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get("RequestID")
		c.String(http.StatusOK, id.(string))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", inbound)
	assert.Equal(t, inbound, serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	assert.NotEqual(t, "<script>", serve(r, req).Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to send email. Please try again later.", errors.New("dial tcp")).
			WithDetails("dial tcp"))
	})
	r.GET("/raw", func(c *gin.Context) {
		c.Error(errors.New("secret=hunter2"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email. Please try again later.","details":"dial tcp"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
}

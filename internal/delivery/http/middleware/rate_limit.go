package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-contact-relay/internal/delivery/http/response"
	"go-contact-relay/pkg/logger"
	"go-contact-relay/pkg/metrics"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:contact:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Redis returns the shared client; nil or a nil result selects the in-memory limiter
	Redis func() *goredis.Client
}

// limiterEntry is the in-memory fallback for one key
type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

var (
	limiterStore = sync.Map{}
	cleanupOnce  sync.Once
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// startCleanup drops in-memory limiters idle for longer than idle
func startCleanup(idle time.Duration) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			cutoff := time.Now().Add(-idle)
			limiterStore.Range(func(key, value interface{}) bool {
				entry := value.(*limiterEntry)
				entry.mu.Lock()
				if entry.lastSeen.Before(cutoff) {
					limiterStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// ContactRateLimitConfig limits contact submissions per client IP
func ContactRateLimitConfig(limit int, window time.Duration, redisClient func() *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // a Redis outage must not block customers
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Redis: redisClient,
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 {
		config.Limit = 5
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:contact:"
	}

	cleanupOnce.Do(func() { startCleanup(time.Hour) })

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var (
			allowed   bool
			remaining int
			resetAt   time.Time
			err       error
		)

		var redisClient *goredis.Client
		if config.Redis != nil {
			redisClient = config.Redis()
		}

		if redisClient != nil {
			allowed, remaining, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err != nil {
				logger.Log.WarnContext(c.Request.Context(), "rate limit store unavailable", "error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					c.Abort()
					return
				}
				allowed, remaining, resetAt = checkRateLimitInMemory(fullKey, config, now)
			}
		} else {
			allowed, remaining, resetAt = checkRateLimitInMemory(fullKey, config, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(math.Ceil(time.Until(resetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			metrics.RateLimitedTotal.Inc()
			logger.Log.WarnContext(c.Request.Context(), "rate limit triggered",
				"client_ip", c.ClientIP(),
				"path", c.FullPath(),
			)

			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (bool, int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return false, 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	remaining := config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	return int(count) <= config.Limit, remaining, resetAt, nil
}

// checkRateLimitInMemory uses a token bucket that refills Limit tokens per Window
func checkRateLimitInMemory(key string, config RateLimitConfig, now time.Time) (bool, int, time.Time) {
	entryI, _ := limiterStore.LoadOrStore(key, &limiterEntry{
		limiter: rate.NewLimiter(rate.Every(config.Window/time.Duration(config.Limit)), config.Limit),
	})
	entry := entryI.(*limiterEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)

	remaining := int(math.Floor(tokens))
	if remaining < 0 {
		remaining = 0
	}

	// time until one token is available again
	resetAt := now
	if tokens < 1 {
		perToken := config.Window / time.Duration(config.Limit)
		resetAt = now.Add(time.Duration((1 - tokens) * float64(perToken)))
	}
	return allowed, remaining, resetAt
}

// RateLimitStore names the backend the limiter is effectively using.
// ping reports whether Redis answers; nil means Redis was never configured.
func RateLimitStore(ping func(context.Context) error) func() string {
	return func() string {
		if ping == nil {
			return "memory"
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			return "memory"
		}
		return "redis"
	}
}

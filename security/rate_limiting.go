package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles attacker-facing endpoints (the attendance scan
// endpoint receives attacker-controlled QR payloads).
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, limit: limit, window: window}
}

// Middleware wraps a route handler with a fixed-window per-IP limit
// plus a cheap user-agent check.
func (r *RateLimiter) Middleware(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if r.isSuspiciousUserAgent(userAgent) {
			return e.JSON(403, map[string]string{
				"error": "Access denied",
			})
		}

		ok, err := r.Allow(e.Request.Context(), e.RealIP())
		if err != nil {
			// Redis being down must not take the scanner down with it.
			return next(e)
		}
		if !ok {
			return e.JSON(429, map[string]string{
				"error": "Too many requests. Please try again later.",
			})
		}

		return next(e)
	}
}

// Allow counts a request against the caller's fixed window and reports
// whether it is still within the limit.
func (r *RateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", identifier)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}

	return count <= int64(r.limit), nil
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}

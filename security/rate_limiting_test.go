package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, time.Minute)

	// First request in the window starts the expiry.
	mock.ExpectIncr("ratelimit:1.2.3.4").SetVal(1)
	mock.ExpectExpire("ratelimit:1.2.3.4", time.Minute).SetVal(true)

	ok, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectIncr("ratelimit:1.2.3.4").SetVal(2)

	ok, err = limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, time.Minute)

	mock.ExpectIncr("ratelimit:1.2.3.4").SetVal(3)

	ok, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_PropagatesRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, time.Minute)

	mock.ExpectIncr("ratelimit:1.2.3.4").SetErr(assert.AnError)

	_, err := limiter.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}

func TestRateLimiter_IsSuspiciousUserAgent(t *testing.T) {
	limiter := NewRateLimiter(nil, 30, time.Minute)

	assert.True(t, limiter.isSuspiciousUserAgent("Googlebot/2.1"))
	assert.True(t, limiter.isSuspiciousUserAgent("my-crawler 1.0"))
	assert.True(t, limiter.isSuspiciousUserAgent("Spider"))
	assert.False(t, limiter.isSuspiciousUserAgent("Mozilla/5.0 (X11; Linux x86_64)"))
	assert.False(t, limiter.isSuspiciousUserAgent(""))
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/internal/application/services"
	tmocks "github.com/avatarctic/storefront-admin/internal/mocks"
)

func TestRateLimiter_BlocksAboveLimit(t *testing.T) {
	count := 0
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := &tmocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, subject string, window time.Duration, prefix string, ttl time.Duration) (int, time.Time, error) {
		assert.Equal(t, "203.0.113.9", subject)
		assert.Equal(t, "ratelimit:client", prefix)
		count++
		return count, start, nil
	}}
	svc := services.NewRateLimiterService(repo, &services.RateLimiterConfig{RequestsPerMinute: 2}, nil)
	ctx := context.Background()

	ok, remaining, limit, reset, err := svc.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, 2, limit)
	assert.Equal(t, start.Add(time.Minute), reset)

	ok, _, _, _, _ = svc.Allow(ctx, "203.0.113.9")
	assert.True(t, ok)
	ok, remaining, _, _, _ = svc.Allow(ctx, "203.0.113.9")
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	repo := &tmocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, subject string, window time.Duration, prefix string, ttl time.Duration) (int, time.Time, error) {
		return 0, time.Time{}, errors.New("redis unavailable")
	}}
	svc := services.NewRateLimiterService(repo, nil, nil)
	ok, _, _, _, err := svc.Allow(context.Background(), "x")
	assert.Error(t, err)
	assert.True(t, ok)
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		ok   bool
	}{
		{name: "nil", err: nil, want: 0, ok: false},
		{name: "plain int", err: errors.New("3"), want: 3, ok: true},
		{name: "api error", err: &APIError{RetryAfter: 9, Message: "rate"}, want: 9, ok: true},
		{name: "text pattern", err: errors.New("Too Many Requests: retry after 4"), want: 4, ok: true},
		{name: "wrapped", err: fmt.Errorf("send: %w", &APIError{RetryAfter: 2}), want: 2, ok: true},
		{name: "invalid", err: errors.New("other error"), want: 0, ok: false},
		{name: "zero", err: errors.New("retry after 0"), want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRetryAfter(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestWithRetryNilRateLimiter(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), nil, 0, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryStopsOnPlainError(t *testing.T) {
	rl := NewRateLimiter(1000, 10)
	calls := 0
	err := WithRetry(context.Background(), rl, 1, func() error {
		calls++
		return errors.New("Bad Request: chat not found")
	})
	assert.EqualError(t, err, "Bad Request: chat not found")
	assert.Equal(t, 1, calls)
}

func TestWithRetryContextCancelOnRetry(t *testing.T) {
	rl := NewRateLimiter(1000, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := WithRetry(ctx, rl, 1, func() error {
		return fmt.Errorf("retry after 10")
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiterIsPerChat(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, rl.Wait(ctx, 1))
	require.NoError(t, rl.Wait(ctx, 2))
	assert.Error(t, rl.Wait(ctx, 1))
}

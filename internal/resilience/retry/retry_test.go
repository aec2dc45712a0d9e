package retry

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_RetriesUntilSuccess(t *testing.T) {
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return syscall.ECONNRESET
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, syscall.ECONNRESET)
}

func TestWithBackoff_NonRetryableAbortsImmediately(t *testing.T) {
	calls := 0
	permanent := errors.New("markup changed")

	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_ContextCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := WithBackoff(ctx, Config{
		MaxAttempts:  3,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}, func() error {
		cancel()
		return syscall.ECONNREFUSED
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"http 500", &HTTPError{StatusCode: 500}, true},
		{"http 429", &HTTPError{StatusCode: 429}, true},
		{"http 408", &HTTPError{StatusCode: 408}, true},
		{"http 404", &HTTPError{StatusCode: 404}, false},
		{"http 403", &HTTPError{StatusCode: 403}, false},
		{"plain error", errors.New("selector matched nothing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestAddJitter_Bounds(t *testing.T) {
	base := 100 * time.Millisecond

	for i := 0; i < 50; i++ {
		got := addJitter(base, 0.1)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+10*time.Millisecond)
	}

	assert.Equal(t, base, addJitter(base, 0))
}

// Package retry provides retry logic with exponential backoff and jitter
// for the scraping paths.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the maximum number of attempts including the first
	MaxAttempts int

	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries
	MaxDelay time.Duration

	// Multiplier is the exponential backoff factor
	Multiplier float64

	// JitterFraction is the fraction of delay added as random jitter (0.0 to 1.0)
	JitterFraction float64
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// ListingConfig returns the configuration for listing-page scrapes.
// The listing runs once per cycle, so it gets the most patience.
func ListingConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// ContentConfig returns the configuration for per-article content
// fetches. Short and shallow: a lost body is stored as a placeholder,
// so burning the cycle budget on one article is not worth it.
func ContentConfig() Config {
	return Config{
		MaxAttempts:    2,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff executes fn with retry logic and exponential backoff.
// It returns nil once fn succeeds, or the last error after all attempts.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// IsRetryable determines if an error is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context errors are not retryable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= 500 && httpErr.StatusCode < 600 {
			return true
		}
		if httpErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if httpErr.StatusCode == http.StatusRequestTimeout {
			return true
		}
	}

	return false
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// addJitter adds random jitter to a duration to prevent thundering herd.
func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}

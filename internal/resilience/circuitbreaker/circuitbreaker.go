// Package circuitbreaker wraps github.com/sony/gobreaker for the
// per-site scraping paths, so one broken site stops being hammered
// while the other keeps ingesting.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the breaker in logs
	Name string

	// MaxRequests is the number of probe requests allowed when half-open
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts
	Interval time.Duration

	// Timeout is how long to stay open before probing again
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit
	FailureThreshold float64

	// MinRequests is the minimum sample size before the ratio is evaluated
	MinRequests uint32
}

// DefaultConfig returns a default configuration for circuit breakers.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ScraperConfig returns the per-site configuration used by the source
// adapters. The timeout spans several ingestion cycles: when a site
// changes its markup every cycle fails, and probing once in a while is
// enough to notice a fix.
func ScraperConfig(site string) Config {
	return Config{
		Name:             "scraper-" + site,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          15 * time.Minute,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker with the given configuration.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit breaker. If the circuit is open
// it returns gobreaker.ErrOpenState immediately.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether the circuit is currently open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

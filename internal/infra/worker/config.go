// Package worker wires the ingestion side of the bot: scheduling
// configuration and the operational HTTP endpoints (health, metrics).
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newswire/internal/pkg/config"
)

// WorkerConfig controls the ingestion worker: how often cycles run, how
// long one cycle may take, how fast notifications go out, and where the
// operational HTTP server listens.
type WorkerConfig struct {
	// CronSchedule drives cycle scheduling. Accepts five-field cron
	// expressions and descriptors like "@every 10m".
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string

	// ContentParallelism caps concurrent article body fetches per source.
	ContentParallelism int

	// CycleTimeout cancels a cycle that runs too long.
	CycleTimeout time.Duration

	// NotifyRatePerSec and NotifyBurst shape the shared Telegram send
	// budget. Telegram allows roughly 30 messages per second per bot.
	NotifyRatePerSec int
	NotifyBurst      int

	// HealthPort serves /health, /health/ready and /metrics.
	HealthPort int
}

// DefaultConfig returns production-ready defaults: a cycle every ten
// minutes in Kazakhstan time, generous timeout headroom and a send rate
// safely under the Telegram limit.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:       "@every 10m",
		Timezone:           "Asia/Almaty",
		ContentParallelism: 4,
		CycleTimeout:       10 * time.Minute,
		NotifyRatePerSec:   25,
		NotifyBurst:        5,
		HealthPort:         9091,
	}
}

// Validate checks every field and returns all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.ContentParallelism, 1, 16); err != nil {
		errs = append(errs, fmt.Errorf("content parallelism: %w", err))
	}
	if err := config.ValidateDuration(c.CycleTimeout, 30*time.Second, time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("cycle timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.NotifyRatePerSec, 1, 30); err != nil {
		errs = append(errs, fmt.Errorf("notify rate: %w", err))
	}
	if err := config.ValidateIntRange(c.NotifyBurst, 1, 30); err != nil {
		errs = append(errs, fmt.Errorf("notify burst: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration with the fail-open
// strategy: every invalid or missing value takes its default, a warning
// is logged and the fallback metrics are updated, and the returned
// config is always valid.
//
// Environment variables:
//   - INGEST_SCHEDULE: cron expression or descriptor (default "@every 10m")
//   - WORKER_TIMEZONE: IANA timezone (default "Asia/Almaty")
//   - CONTENT_PARALLELISM: integer 1-16 (default 4)
//   - CYCLE_TIMEOUT: duration 30s-1h (default 10m)
//   - NOTIFY_RATE: messages per second 1-30 (default 25)
//   - NOTIFY_BURST: burst size 1-30 (default 5)
//   - HEALTH_PORT: integer 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *config.ConfigMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	fallbackApplied := false

	record := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("INGEST_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	record("ingest_schedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	record("timezone", result)

	result = config.LoadEnvInt("CONTENT_PARALLELISM", cfg.ContentParallelism, func(v int) error {
		return config.ValidateIntRange(v, 1, 16)
	})
	cfg.ContentParallelism = result.Value.(int)
	record("content_parallelism", result)

	result = config.LoadEnvDuration("CYCLE_TIMEOUT", cfg.CycleTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 30*time.Second, time.Hour)
	})
	cfg.CycleTimeout = result.Value.(time.Duration)
	record("cycle_timeout", result)

	result = config.LoadEnvInt("NOTIFY_RATE", cfg.NotifyRatePerSec, func(v int) error {
		return config.ValidateIntRange(v, 1, 30)
	})
	cfg.NotifyRatePerSec = result.Value.(int)
	record("notify_rate", result)

	result = config.LoadEnvInt("NOTIFY_BURST", cfg.NotifyBurst, func(v int) error {
		return config.ValidateIntRange(v, 1, 30)
	})
	cfg.NotifyBurst = result.Value.(int)
	record("notify_burst", result)

	result = config.LoadEnvInt("HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	record("health_port", result)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg
}

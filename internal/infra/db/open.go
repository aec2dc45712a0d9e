// Package db owns the PostgreSQL connection pool and schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newswire/internal/pkg/config"
)

// PoolConfig holds database connection pool configuration.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the default connection pool configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// LoadPoolConfig reads pool settings from the environment, falling back to
// defaults on missing or invalid values. Fallbacks are logged, never fatal.
func LoadPoolConfig() PoolConfig {
	def := DefaultPoolConfig()

	maxOpen := config.LoadEnvInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns, func(v int) error {
		return config.ValidateIntRange(v, 1, 500)
	})
	maxIdle := config.LoadEnvInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns, func(v int) error {
		return config.ValidateIntRange(v, 1, 500)
	})
	lifetime := config.LoadEnvDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime, config.ValidatePositiveDuration)
	idleTime := config.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime, config.ValidatePositiveDuration)

	for _, result := range []config.ConfigLoadResult{maxOpen, maxIdle, lifetime, idleTime} {
		for _, warning := range result.Warnings {
			slog.Warn("database pool configuration fallback", slog.String("warning", warning))
		}
	}

	return PoolConfig{
		MaxOpenConns:    maxOpen.Value.(int),
		MaxIdleConns:    maxIdle.Value.(int),
		ConnMaxLifetime: lifetime.Value.(time.Duration),
		ConnMaxIdleTime: idleTime.Value.(time.Duration),
	}
}

// Open creates and verifies a database connection pool from DATABASE_URL.
func Open(ctx context.Context) (*sql.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("Open: DATABASE_URL not set")
	}

	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("Open: sql.Open: %w", err)
	}

	cfg := LoadPoolConfig()
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("Open: ping: %w", err)
	}

	slog.Info("database connection established")
	return pool, nil
}

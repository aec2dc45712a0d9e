package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestLoadPoolConfig_Defaults(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "")

	cfg := LoadPoolConfig()

	assert.Equal(t, DefaultPoolConfig(), cfg)
}

func TestLoadPoolConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_MAX_IDLE_CONNS", "20")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2h")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "15m")

	cfg := LoadPoolConfig()

	assert.Equal(t, 50, cfg.MaxOpenConns)
	assert.Equal(t, 20, cfg.MaxIdleConns)
	assert.Equal(t, 2*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 15*time.Minute, cfg.ConnMaxIdleTime)
}

func TestLoadPoolConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "-5m")

	cfg := LoadPoolConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
}

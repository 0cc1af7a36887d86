package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"unset", nil, 42},
		{"valid", strPtr("100"), 100},
		{"negative", strPtr("-10"), -10},
		{"zero", strPtr("0"), 0},
		{"invalid", strPtr("not-a-number"), 42},
		{"float", strPtr("42.5"), 42},
		{"empty", strPtr(""), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrClear(t, "TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	def := 5 * time.Second
	tests := []struct {
		name  string
		value *string
		want  time.Duration
	}{
		{"unset", nil, def},
		{"milliseconds", strPtr("250ms"), 250 * time.Millisecond},
		{"seconds", strPtr("30s"), 30 * time.Second},
		{"complex", strPtr("1m30s"), 90 * time.Second},
		{"zero", strPtr("0s"), 0},
		{"invalid", strPtr("soon"), def},
		{"no unit", strPtr("100"), def},
		{"empty", strPtr(""), def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrClear(t, "TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", def))
		})
	}
}

// TestLoad_DatabasePoolConfig tests that database pool configuration is loaded correctly
func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxConnIdleTime, cfg.DBMaxConnIdleTime)
		assert.Equal(t, DefaultDBMaxConnLifetime, cfg.DBMaxConnLifetime)
	})

	t.Run("custom", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})
}

func strPtr(s string) *string { return &s }

func setOrClear(t *testing.T, key string, value *string) {
	t.Helper()
	t.Setenv(key, "")
	if value == nil {
		unsetEnv(key)
		return
	}
	t.Setenv(key, *value)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 512, cfg.MaxTraces)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_MAX_AGE", "48h")
	t.Setenv("SESSION_CLEANUP_INTERVAL", "15m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "Text")
	t.Setenv("MAX_TRACES", "64")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 48*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, 15*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 64, cfg.MaxTraces)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "soon")
	t.Setenv("MAX_TRACES", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, 512, cfg.MaxTraces)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:            "8080",
			SessionMaxAge:   time.Hour,
			CleanupInterval: time.Minute,
			LogLevel:        "info",
			LogFormat:       "json",
			MaxTraces:       10,
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "PORT")

	cfg = base()
	cfg.SessionMaxAge = 0
	assert.ErrorContains(t, cfg.Validate(), "SESSION_MAX_AGE")

	cfg = base()
	cfg.CleanupInterval = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "SESSION_CLEANUP_INTERVAL")

	cfg = base()
	cfg.LogFormat = "yaml"
	assert.ErrorContains(t, cfg.Validate(), "LOG_FORMAT")

	cfg = base()
	cfg.MaxTraces = 0
	assert.ErrorContains(t, cfg.Validate(), "MAX_TRACES")
}

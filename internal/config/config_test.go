package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/AirQualityUCI.csv", cfg.DataPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("AIRQ_DATA_PATH", "/srv/air/AirQualityUCI.xlsx")
	t.Setenv("AIRQ_HTTP_ADDR", ":9090")
	t.Setenv("AIRQ_LOG_LEVEL", "debug")
	t.Setenv("AIRQ_LOG_FORMAT", "text")
	t.Setenv("AIRQ_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("AIRQ_CACHE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/air/AirQualityUCI.xlsx", cfg.DataPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.CacheEnabled)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("AIRQ_LOG_FORMAT", "yaml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIRQ_LOG_FORMAT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("AIRQ_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIRQ_LOG_LEVEL")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("AIRQ_SHUTDOWN_TIMEOUT", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIRQ_SHUTDOWN_TIMEOUT")
}

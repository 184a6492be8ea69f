package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "BACKEND_URL", "BACKEND_TOKEN_SECRET", "PORT", "REDIS_URL", "REDIS_ADDR")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, "http://localhost:3000/api", cfg.Backend.BaseURL)
	assert.Empty(t, cfg.Backend.TokenSecret, "no service token secret must be invented")
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ReportTTL)
	assert.False(t, cfg.Cache.Enabled())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "https://api.delicrem.co/api")
	t.Setenv("BACKEND_TOKEN_SECRET", "  s3cret  ")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REPORT_TTL_MINUTES", "5")
	t.Setenv("SERVER_MODE", "DEBUG")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Address())
	assert.Equal(t, "https://api.delicrem.co/api", cfg.Backend.BaseURL)
	assert.Equal(t, "s3cret", cfg.Backend.TokenSecret)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Cache.ReportTTL)
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestNonPositiveDurationsFallBack(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "0")
	t.Setenv("REPORT_TTL_MINUTES", "-3")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ReportTTL)
}

func TestEmptyBackendURLSelectsInMemory(t *testing.T) {
	t.Setenv("BACKEND_URL", "")

	cfg := Load()
	assert.Empty(t, cfg.Backend.BaseURL)
}

func TestEmptyPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "")

	assert.Equal(t, ":8080", Load().Address())
}

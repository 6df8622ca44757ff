package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
api_base_url = "http://localhost:5000/api"
include_gender = true
layout = "basic"
allowed_origins = ["http://localhost:3000"]

[production]
host = "0.0.0.0"
port = 8080
logs_path = "/var/log/fitmentor/webclient"
sentry_enabled = true
api_base_url = "https://api.fitmentor.example/api"
api_timeout_seconds = 10
include_session_duration = true
default_session_duration = 45
redis_host = "localhost"
redis_port = "6379"
submit_rate_limit_per_min = 10
trusted_proxies = ["10.0.0.0/8"]
log_max_backups = 5
`

func TestParse(t *testing.T) {
	cfg, err := Parse("dev", testConfig)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.True(t, cfg.IncludeGender)
	assert.Equal(t, "basic", cfg.Layout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	// defaults
	assert.Equal(t, 15, cfg.ApiTimeoutSeconds)
	assert.Equal(t, 60, cfg.DefaultSessionDuration)
	assert.Equal(t, 30, cfg.SessionTTLMinutes)
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
	assert.Equal(t, 10, cfg.LogMaxBackups)
	assert.Equal(t, 50, cfg.LogMaxSizeMB)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.IsProduction())

	cfg, err = Parse("production", testConfig)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.True(t, cfg.SentryEnabled)
	assert.True(t, cfg.IncludeSessionDuration)
	assert.Equal(t, 45, cfg.DefaultSessionDuration)
	assert.Equal(t, 10, cfg.ApiTimeoutSeconds)
	assert.Equal(t, 10, cfg.SubmitRateLimitPerMin)
	assert.Equal(t, "rich", cfg.Layout)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
	assert.Equal(t, 5, cfg.LogMaxBackups)
	assert.True(t, cfg.IsProduction())
}

func TestParse_EnvAliases(t *testing.T) {
	cfg, err := Parse("DEV", testConfig)
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment)

	cfg, err = Parse("prod", testConfig)
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.True(t, cfg.IsProduction())

	cfg, err = Parse("prod", `[production]
environment = "production-eu"`)
	require.NoError(t, err)
	assert.Equal(t, "production-eu", cfg.Environment)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("staging", testConfig)
	assert.Error(t, err)

	_, err = Parse("dev", `[production]
port = 1`)
	assert.Error(t, err, "missing env table")

	_, err = Parse("dev", `[development`)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	t.Setenv(EnvApiBaseURL, "http://backend:5000/api")
	t.Setenv(EnvLayout, "rich")

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000/api", cfg.ApiBaseURL)
	assert.Equal(t, "rich", cfg.Layout)

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

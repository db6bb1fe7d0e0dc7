package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/config"
)

var keys = []string{
	"APP_PORT", "APP_ENV", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "REFERENCE_SOURCE",
	"SESSION_TTL", "SESSION_SWEEP_INTERVAL", "DOCUMENT_URL", "DOCUMENT_FALLBACK_URL",
	"DOCUMENT_LOAD_TIMEOUT", "REQUIRE_TLS", "OTEL_TRACES_SAMPLER_ARG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.TelemetryEnabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.InDelta(t, 1.0, cfg.TraceSampleRatio, 1e-9)
	assert.Equal(t, config.SourceEmbedded, cfg.ReferenceSource)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, 10*time.Second, cfg.DocumentLoadTimeout)
	assert.Empty(t, cfg.DocumentURL)
	assert.False(t, cfg.RequireTLS)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("REFERENCE_SOURCE", "Postgres")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DOCUMENT_URL", "https://example.org/alaskaeb.pdf")
	t.Setenv("DOCUMENT_LOAD_TIMEOUT", "3s")
	t.Setenv("REQUIRE_TLS", "1")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.1")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.TelemetryEnabled)
	assert.Equal(t, config.SourcePostgres, cfg.ReferenceSource)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "https://example.org/alaskaeb.pdf", cfg.DocumentURL)
	assert.Equal(t, 3*time.Second, cfg.DocumentLoadTimeout)
	assert.True(t, cfg.RequireTLS)
	assert.InDelta(t, 0.1, cfg.TraceSampleRatio, 1e-9)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad bool", "OTEL_ENABLED", "maybe"},
		{"bad duration", "SESSION_TTL", "forever"},
		{"negative duration", "SESSION_SWEEP_INTERVAL", "-1m"},
		{"unknown source", "REFERENCE_SOURCE", "s3"},
		{"ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
		{"bad ratio", "OTEL_TRACES_SAMPLER_ARG", "half"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Cleanup(func() { _ = os.Unsetenv("EXPEDITION_TEST_MARKER") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nEXPEDITION_TEST_MARKER=loaded\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port, "environment wins over .env")
	assert.Equal(t, "loaded", os.Getenv("EXPEDITION_TEST_MARKER"))
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

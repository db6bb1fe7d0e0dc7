// Package config reads the API server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Reference data sources.
const (
	SourceEmbedded = "embedded"
	SourcePostgres = "postgres"
)

// Config holds the server configuration.
type Config struct {
	Port        string
	Environment string

	TelemetryEnabled bool
	OTLPEndpoint     string
	TraceSampleRatio float64

	ReferenceSource string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	DocumentURL         string
	DocumentFallbackURL string
	DocumentLoadTimeout time.Duration

	RequireTLS bool
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv creates a Config from environment variables.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Port:                getEnvOrDefault("APP_PORT", "8080"),
		Environment:         getEnvOrDefault("APP_ENV", "development"),
		OTLPEndpoint:        getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ReferenceSource:     strings.ToLower(getEnvOrDefault("REFERENCE_SOURCE", SourceEmbedded)),
		DocumentURL:         os.Getenv("DOCUMENT_URL"),
		DocumentFallbackURL: os.Getenv("DOCUMENT_FALLBACK_URL"),
	}

	cfg.TelemetryEnabled = getBool("OTEL_ENABLED", &errs)
	cfg.RequireTLS = getBool("REQUIRE_TLS", &errs)
	cfg.TraceSampleRatio = getRatio("OTEL_TRACES_SAMPLER_ARG", 1, &errs)
	cfg.SessionTTL = getDuration("SESSION_TTL", 12*time.Hour, &errs)
	cfg.SessionSweepInterval = getDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute, &errs)
	cfg.DocumentLoadTimeout = getDuration("DOCUMENT_LOAD_TIMEOUT", 10*time.Second, &errs)

	switch cfg.ReferenceSource {
	case SourceEmbedded, SourcePostgres:
	default:
		errs = append(errs, fmt.Errorf("REFERENCE_SOURCE: unknown source %q", cfg.ReferenceSource))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
	}
	return b
}

func getRatio(key string, defaultValue float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	if f < 0 || f > 1 {
		*errs = append(*errs, fmt.Errorf("%s: must be between 0 and 1", key))
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	if d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: must be positive", key))
		return defaultValue
	}
	return d
}

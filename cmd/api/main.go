// Package main provides the entrypoint for the Ruth Gorge expedition planner API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api"
	"github.com/ruthgorge/expedition/internal/api/middleware"
	"github.com/ruthgorge/expedition/internal/config"
	"github.com/ruthgorge/expedition/internal/database"
	"github.com/ruthgorge/expedition/internal/document"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/provider/resilience"
	"github.com/ruthgorge/expedition/internal/reference"
	"github.com/ruthgorge/expedition/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "expedition-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting expedition planner API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize OpenTelemetry
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
		SampleRatio:    cfg.TraceSampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics(nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}
	plannerMetrics, err := telemetry.NewPlannerMetrics(telemetry.Meter("github.com/ruthgorge/expedition/internal/plan"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize planner metrics")
	}

	// Load the reference catalog
	var source reference.Source = reference.NewEmbeddedSource()
	if cfg.ReferenceSource == config.SourcePostgres {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().Str("database", dbConfig.Redacted()).Msg("database connected")
		source = reference.NewPostgresSource(pool)
	}

	catalog, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.ReferenceSource).Msg("failed to load reference catalog")
	}
	store, err := reference.NewStore(catalog, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid reference catalog")
	}
	log.Info().
		Str("source", cfg.ReferenceSource).
		Int("routes", len(store.Routes())).
		Int("climbers", len(store.Climbers())).
		Msg("reference catalog loaded")

	// Plan sessions
	clock := time.Now
	plans := plan.NewService(plan.ServiceConfig{
		Repository: plan.NewInMemoryRepository(clock),
		Store:      store,
		SessionTTL: cfg.SessionTTL,
		Logger:     log,
		Metrics:    plannerMetrics,
		Now:        clock,
	})
	sweeper := plan.NewSweeper(plan.SweeperConfig{
		Service:  plans,
		Interval: cfg.SessionSweepInterval,
		Logger:   log,
	})
	go sweeper.Start(ctx)

	// Reference document, fetched once in the background
	registry := resilience.NewRegistry()
	docClientConfig := resilience.DefaultClientConfig("reference-document")
	docClientConfig.MaxRetries = 1
	docClientConfig.Registry = registry
	docClientConfig.CircuitBreaker.Logger = &log
	loader := document.NewLoader(document.LoaderConfig{
		URL:         cfg.DocumentURL,
		FallbackURL: cfg.DocumentFallbackURL,
		Timeout:     cfg.DocumentLoadTimeout,
		Client:      resilience.NewClient(docClientConfig),
		Logger:      log,
	})
	loader.Start(ctx)

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		RequireTLS:  cfg.RequireTLS,
		Plans:       plans,
		Sweeper:     sweeper,
		Document:    loader,
		Registry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("env", cfg.Environment).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/productgen/internal/catalog"
	"github.com/phrazzld/productgen/internal/config"
	"github.com/phrazzld/productgen/internal/generation"
	"github.com/phrazzld/productgen/internal/metrics"
	"github.com/phrazzld/productgen/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	promRegistry *prometheus.Registry
	metrics      *metrics.Metrics

	registry   *generation.Registry
	generator  generation.ProductGenerator
	jwtService auth.JWTService
	categories catalog.CategoryLookup

	pool *pgxpool.Pool
}

// newApplication wires every component from cfg. Missing backends and an
// unreachable catalog database are tolerated; everything else is fatal.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, factory backendFactory) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       log,
		promRegistry: prometheus.NewRegistry(),
	}

	app.promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.promRegistry)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	app.registry = buildRegistry(ctx, cfg.LLM, factory, log)

	prompts, err := generation.NewPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	parser, err := generation.NewResponseParser(log)
	if err != nil {
		return nil, fmt.Errorf("failed to compile response schemas: %w", err)
	}

	app.generator, err = generation.NewService(app.registry, prompts, parser, log,
		generation.WithRecorder(app.metrics),
		generation.WithRetryPolicy(generation.RetryPolicy{
			MaxRetries: cfg.LLM.MaxRetries,
			BaseDelay:  time.Duration(cfg.LLM.RetryDelaySeconds) * time.Second,
		}))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	app.categories = app.openCatalog(ctx)
	return app, nil
}

// openCatalog connects to the catalog database when one is configured.
// Category lookups are best-effort, so connection failures only warn.
func (app *application) openCatalog(ctx context.Context) catalog.CategoryLookup {
	if app.config.Database.URL == "" {
		app.logger.Info("no catalog database configured, category lookups disabled")
		return catalog.Disabled{}
	}

	pool, err := catalog.OpenPool(ctx, app.config.Database.URL)
	if err != nil {
		app.logger.Warn("catalog database unavailable, category lookups disabled", "error", err)
		return catalog.Disabled{}
	}

	store, err := catalog.NewPostgresCategoryStore(pool, app.logger)
	if err != nil {
		pool.Close()
		app.logger.Warn("failed to create category store", "error", err)
		return catalog.Disabled{}
	}

	app.pool = pool
	return store
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
	}
}

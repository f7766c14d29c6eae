// Package main implements the productgen HTTP server, which generates
// e-commerce product listings from images, titles, or nothing at all.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/productgen/internal/config"
	"github.com/phrazzld/productgen/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("productgen: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"text_provider", cfg.LLM.Text.Provider,
		"vision_provider", cfg.LLM.Vision.Provider,
		"catalog_configured", cfg.Database.URL != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, l, newBackend)
	if err != nil {
		return err
	}

	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	return app.startHTTPServer(ctx, router)
}

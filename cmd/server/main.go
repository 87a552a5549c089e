// Package main implements the entry point for the patient records API server,
// which serves schema-validated CRUD over in-memory patient, book and
// inventory item stores.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/patient-api/internal/config"
	"github.com/phrazzld/patient-api/internal/platform/logger"
)

func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to build application", "error", err)
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"patient_id_policy", cfg.Store.PatientIDPolicy,
		"book_id_policy", cfg.Store.BookIDPolicy,
		"item_id_policy", cfg.Store.ItemIDPolicy,
		"rate_limit_enabled", cfg.RateLimit.Enabled())
	if cfg.Store.SeedFile != "" {
		l.Debug("Seed configuration", "seed_file_present", true)
	}

	return cfg, l, nil
}

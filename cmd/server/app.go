package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/patient-api/internal/config"
	"github.com/phrazzld/patient-api/internal/events"
	"github.com/phrazzld/patient-api/internal/platform/memory"
	"github.com/phrazzld/patient-api/internal/seed"
	"github.com/phrazzld/patient-api/internal/store"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	events *events.InMemoryEventEmitter

	// Stores (using interfaces for proper abstraction)
	patientStore store.PatientStore
	bookStore    store.BookStore
	itemStore    store.ItemStore
}

// newApplication creates the stores from their configured ID policies, wires
// their change events to the audit log and loads the seed file, if any.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	patientPolicy, err := store.ParseIDPolicy(cfg.Store.PatientIDPolicy)
	if err != nil {
		return nil, fmt.Errorf("patient store: %w", err)
	}
	bookPolicy, err := store.ParseIDPolicy(cfg.Store.BookIDPolicy)
	if err != nil {
		return nil, fmt.Errorf("book store: %w", err)
	}
	itemPolicy, err := store.ParseIDPolicy(cfg.Store.ItemIDPolicy)
	if err != nil {
		return nil, fmt.Errorf("item store: %w", err)
	}

	app.events = events.NewInMemoryEventEmitter(logger)
	app.events.RegisterHandler(events.NewAuditLogHandler(logger))
	emit := memory.WithEventEmitter(app.events)

	app.patientStore = memory.NewPatientStore(patientPolicy, logger, emit)
	app.bookStore = memory.NewBookStore(bookPolicy, logger, emit)
	app.itemStore = memory.NewItemStore(itemPolicy, logger, emit)

	if cfg.Store.SeedFile != "" {
		f, err := seed.Load(cfg.Store.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed data: %w", err)
		}
		_, err = seed.Apply(ctx, f, seed.Stores{
			Patients: app.patientStore,
			Books:    app.bookStore,
			Items:    app.itemStore,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to apply seed data: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup runs after the HTTP server has stopped.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		"patients", app.patientStore.Len(context.Background()),
		"books", app.bookStore.Len(context.Background()),
		"items", app.itemStore.Len(context.Background()))
}

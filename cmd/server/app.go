package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/docextract/internal/api"
	"github.com/phrazzld/docextract/internal/config"
	"github.com/phrazzld/docextract/internal/platform/postgres"
	"github.com/phrazzld/docextract/internal/service"
	"github.com/phrazzld/docextract/internal/service/auth"
	"github.com/phrazzld/docextract/internal/store"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	extractionStore   store.ExtractionStore
	jwtService        auth.JWTService
	extractionService service.ExtractionService

	router http.Handler
}

// newApplication wires stores, services and handlers together.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	app.extractionStore = postgres.NewPostgresExtractionStore(db, logger)

	app.extractionService, err = service.NewExtractionService(app.extractionStore, cfg.Batch, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction service: %w", err)
	}

	app.router = api.NewRouter(api.RouterDeps{
		ExtractionService: app.extractionService,
		JWTService:        app.jwtService,
		Logger:            logger,
	})
	return app, nil
}

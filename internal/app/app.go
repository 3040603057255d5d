// Package app wires the restwell services from a loaded configuration.
// It is shared by the HTTP server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"restwell/config"
	"restwell/internal/fitbit"
	"restwell/internal/fitsync"
	"restwell/internal/logging"
	"restwell/internal/recommend"
	"restwell/internal/storage/sqlite"
	"restwell/internal/tokens"
)

// App holds the long-lived services
type App struct {
	Storage         *sqlite.SQLiteStorage
	Fitbit          *fitbit.Client
	Tokens          *tokens.Manager
	Sync            *fitsync.Service
	Recommendations *recommend.Service
}

// New opens the database and builds every service on top of it
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("Initializing SQLite database", "component", "app", "path", cfg.Database.Path)
	db, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client := fitbit.NewClient(fitbit.Config{
		ClientID:     cfg.Fitbit.ClientID,
		ClientSecret: cfg.Fitbit.ClientSecret,
		RedirectURI:  cfg.Fitbit.RedirectURI,
		AuthURI:      cfg.Fitbit.AuthURI,
		TokenURI:     cfg.Fitbit.TokenURI,
		APIBaseURL:   cfg.Fitbit.APIBaseURL,
		Scope:        cfg.Fitbit.Scope,
		Timeout:      cfg.Fitbit.Timeout(),
	}, logger)

	manager := tokens.NewManager(
		db,
		logging.NewRefresherLogger(client, logger),
		logger,
	)

	orchestrator := fitsync.NewOrchestrator(manager, client, logger)
	syncService := fitsync.NewService(orchestrator, db, logger)

	var generator recommend.Generator
	if cfg.Recommendations.GenAIAPIKey != "" {
		genaiGenerator, err := recommend.NewGenAIGenerator(ctx,
			cfg.Recommendations.GenAIAPIKey,
			cfg.Recommendations.Model,
			logger,
		)
		if err != nil {
			db.Close()
			return nil, err
		}
		generator = logging.NewGeneratorLogger(genaiGenerator, logger)
	} else {
		logger.Warn("No GenAI API key configured, serving sample recommendations only", "component", "app")
	}

	return &App{
		Storage:         db,
		Fitbit:          client,
		Tokens:          manager,
		Sync:            syncService,
		Recommendations: recommend.NewService(db, generator, logger),
	}, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.Storage.Close()
}

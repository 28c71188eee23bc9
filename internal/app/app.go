// Package app defines the App struct that composes the module's shared dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the database connection provider
//
// Repositories are built on top of an App (see repository.NewRepositories).
package app

import (
	"context"
	"fmt"

	"github.com/deppfellow/issuetrack/internal/config"
	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/issuetrack/internal/logger"
)

// App is the application container that holds shared resources.
type App struct {
	// Config holds all config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	// If New Relic is disabled, this may exist but contain nil nrApp.
	LoggerService *loggerPkg.LoggerService

	// DB opens connections on demand. It never holds one open.
	DB *database.Provider
}

// New constructs an App and initializes the connection provider.
//
// When verify is true one connection is opened and closed so that a bad
// host or password surfaces at startup instead of on the first query.
// Production environments are always verified.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService, verify bool) (*App, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if verify || cfg.Observability.IsProduction() {
		if err := database.WithConn(ctx, db, func(*pgx.Conn) error { return nil }); err != nil {
			return nil, fmt.Errorf("failed to reach database: %w", err)
		}
	}

	logger.Debug().
		Str("env", cfg.Primary.Env).
		Str("database", cfg.Database.String()).
		Msg("application initialized")

	return &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Shutdown flushes the New Relic application, if any.
//
// There is no pool to close: every connection is closed by the operation
// that opened it.
func (a *App) Shutdown() {
	a.LoggerService.Shutdown()
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tarefas-api/internal/cache"
	"github.com/phrazzld/tarefas-api/internal/config"
	"github.com/phrazzld/tarefas-api/internal/importer"
	"github.com/phrazzld/tarefas-api/internal/platform/memory"
	"github.com/phrazzld/tarefas-api/internal/platform/postgres"
	"github.com/phrazzld/tarefas-api/internal/service"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and closed together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService    auth.JWTService
	authenticator *auth.Authenticator
	taskService   service.TaskService
	reconciler    *importer.Reconciler

	// nil when caching is disabled
	cache *cache.Cache
}

// newApplication wires the Postgres-backed stores and every service.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: newUserStore(cfg, logger, db),
		taskStore: postgres.NewPostgresTaskStore(db),
	}
	if err := app.initServices(); err != nil {
		return nil, err
	}
	return app, nil
}

// initServices builds the services on top of the stores already set on app.
func (app *application) initServices() error {
	var err error

	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		slog.String("algorithm", app.config.Auth.Algorithm),
		slog.Int("token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes))

	app.authenticator = auth.NewAuthenticator(app.userStore, auth.NewBcryptVerifier())

	app.taskService, err = service.NewTaskService(app.taskStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	source := importer.NewHTTPSource(app.config.Importer, nil)
	app.reconciler = importer.NewReconciler(app.db, app.taskStore, source)

	if app.config.Cache.Enabled {
		app.cache = cache.New()
	}

	app.logger.Info("Application initialized successfully")
	return nil
}

// newUserStore selects the credential source named in the config.
func newUserStore(cfg *config.Config, logger *slog.Logger, db *sql.DB) store.UserStore {
	if cfg.Auth.UserStore == "postgres" {
		return postgres.NewPostgresUserStore(db)
	}

	users := memory.NewStaticUserStore(cfg.Auth.Users)
	if users.Len() == 0 {
		logger.Warn("no static users configured; every login will fail")
	}
	return users
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		stats := app.cache.Stats()
		app.logger.Info("Response cache statistics",
			slog.Uint64("hits", stats.Hits),
			slog.Uint64("misses", stats.Misses),
			slog.Int("entries", stats.Entries))
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}

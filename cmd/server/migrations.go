package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/phrazzld/tarefas-api/internal/config"
	"github.com/phrazzld/tarefas-api/internal/platform/postgres"
)

// migrationCommands lists the goose commands accepted by -migrate.
var migrationCommands = map[string]func(db *sql.DB, dir string, opts ...goose.OptionsFunc) error{
	"up":      goose.Up,
	"down":    goose.Down,
	"reset":   goose.Reset,
	"status":  goose.Status,
	"version": goose.Version,
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. It does not exit; the error reaches main
// through goose's return value.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// configureGoose points goose at the embedded migrations.
func configureGoose(logger *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetBaseFS(postgres.Migrations())
	goose.SetTableName(postgres.MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// handleMigrations runs one migration command, or validates that the
// database is at the latest embedded version.
func handleMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, validate bool) error {
	migrate, ok := migrationCommands[command]
	if !validate && !ok {
		return fmt.Errorf("unknown migration command %q", command)
	}

	log := logger.With(
		slog.String("correlation_id", uuid.NewString()),
		slog.String("component", "migrations"),
		slog.String("command", command))

	if err := configureGoose(log); err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	if validate {
		return validateAppliedMigrations(db, log)
	}

	start := time.Now()
	if err := migrate(db, "."); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration completed", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// validateAppliedMigrations fails when the database version is behind the
// newest embedded migration.
func validateAppliedMigrations(db *sql.DB, logger *slog.Logger) error {
	migrations, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("failed to collect migrations: %w", err)
	}
	latest, err := migrations.Last()
	if err != nil {
		return fmt.Errorf("no embedded migrations found: %w", err)
	}

	current, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read database version: %w", err)
	}

	if current < latest.Version {
		logger.Error("Not all migrations have been applied",
			slog.Int64("current_version", current),
			slog.Int64("expected_version", latest.Version))
		return fmt.Errorf("database at version %d, expected %d", current, latest.Version)
	}

	logger.Info("Migration verification completed successfully",
		slog.Int64("version", current),
		slog.Int("embedded_migrations", len(migrations)))
	return nil
}

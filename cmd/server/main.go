// Package main implements the entry point for the tarefas API server,
// which serves authenticated task CRUD over HTTP backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run parses flags, loads configuration and either executes a migration
// command or serves HTTP until SIGINT or SIGTERM.
func run(args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	migrateCmd := fs.String("migrate", "", "run a migration command (up, down, status, version, reset) and exit")
	validate := fs.Bool("validate-migrations", false, "check that every embedded migration has been applied and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" || *validate {
		return handleMigrations(ctx, cfg, logger, *migrateCmd, *validate)
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

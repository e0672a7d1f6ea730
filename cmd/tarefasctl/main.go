// Command tarefasctl runs maintenance operations against the task
// database: importing from the external source, reporting and removing
// duplicate titles, listing tasks, and hashing passwords for the static
// user list.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/phrazzld/tarefas-api/internal/api"
	"github.com/phrazzld/tarefas-api/internal/config"
	"github.com/phrazzld/tarefas-api/internal/importer"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/platform/postgres"
	"github.com/phrazzld/tarefas-api/internal/service"
)

const usage = `usage: tarefasctl <command> [flags]

commands:
  import       fetch the external source and insert tasks with new titles
  duplicates   list titles shared by more than one task
  dedupe       delete every task whose title belongs to a task with a lower id
  list         print every task title and state
  hash         print the bcrypt hash of a password read from stdin`

var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	if cmd == "hash" {
		return runHash(rest, stdin, stdout)
	}
	if _, ok := dbCommands[cmd]; !ok {
		return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database connection", slog.String("error", err.Error()))
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	env, err := newEnvironment(cfg, log, db)
	if err != nil {
		return err
	}
	return dbCommands[cmd](logger.WithLogger(ctx, log), env, rest, stdout)
}

// environment carries the services a database command may use.
type environment struct {
	tasks       service.TaskService
	maintenance *service.MaintenanceService
	importer    api.ImportRunner
}

func newEnvironment(cfg *config.Config, log *slog.Logger, db *sql.DB) (*environment, error) {
	taskStore := postgres.NewPostgresTaskStore(db)

	tasks, err := service.NewTaskService(taskStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &environment{
		tasks:       tasks,
		maintenance: service.NewMaintenanceService(db, taskStore, log),
		importer:    importer.NewReconciler(db, taskStore, importer.NewHTTPSource(cfg.Importer, nil)),
	}, nil
}

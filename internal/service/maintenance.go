package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// MaintenanceService reports and removes tasks that share a title.
type MaintenanceService struct {
	db     store.TxBeginner
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewMaintenanceService creates a MaintenanceService.
func NewMaintenanceService(db store.TxBeginner, tasks store.TaskStore, logger *slog.Logger) *MaintenanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MaintenanceService{
		db:     db,
		tasks:  tasks,
		logger: logger.With(slog.String("component", "maintenance_service")),
	}
}

// ReportDuplicates lists every title held by more than one task.
func (s *MaintenanceService) ReportDuplicates(ctx context.Context) ([]store.DuplicateTitle, error) {
	dups, err := s.tasks.FindDuplicateTitles(ctx)
	if err != nil {
		return nil, NewMaintenanceServiceError("report_duplicates", "failed to query duplicates", err)
	}
	return dups, nil
}

// RemoveDuplicates keeps the lowest-ID task for each title and deletes the rest.
func (s *MaintenanceService) RemoveDuplicates(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		n, err := s.tasks.WithTx(tx).DeleteDuplicateTitles(ctx)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		log.Error("failed to remove duplicate tasks", slog.String("error", err.Error()))
		return 0, NewMaintenanceServiceError("remove_duplicates", "failed to delete duplicates", err)
	}

	log.Info("duplicate tasks removed", slog.Int64("removed", removed))
	return removed, nil
}

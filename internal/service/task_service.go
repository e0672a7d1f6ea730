package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// TaskService provides task CRUD with validation.
type TaskService interface {
	// ListTasks returns tasks matching the filter, ordered by ID.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error)

	// CreateTask validates the input and stores a new task.
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask replaces the mutable fields of a task.
	UpdateTask(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a TaskService.
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	if filter.Skip < 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0", ErrInvalidPagination)
	}
	if filter.Limit < 1 || filter.Limit > store.MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidPagination, store.MaxLimit)
	}
	if filter.State != nil && !filter.State.Valid() {
		return nil, domain.NewValidationError("state", "must be one of pending, in_progress, done", domain.ErrInvalidTaskState)
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// UpdateTask writes without a prior read; the store reports a missing ID and
// returns the stored creation time.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := &domain.Task{ID: id}
	if err := task.Apply(in, s.now()); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

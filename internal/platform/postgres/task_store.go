package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/store"
)

const taskColumns = "id, title, description, state, created_at, updated_at"

// PostgresTaskStore implements store.TaskStore using PostgreSQL.
type PostgresTaskStore struct {
	db  store.DBTX
	now func() time.Time
}

// NewPostgresTaskStore creates a PostgresTaskStore on a connection or transaction.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}
	return &PostgresTaskStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, now: s.now}
}

// List implements store.TaskStore.List.
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	log := logger.FromContext(ctx)

	var (
		b    strings.Builder
		args []any
	)
	b.WriteString("SELECT " + taskColumns + " FROM tasks")
	if filter.State != nil {
		args = append(args, string(*filter.State))
		fmt.Fprintf(&b, " WHERE state = $%d", len(args))
	}
	b.WriteString(" ORDER BY id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	args = append(args, max(filter.Skip, 0))
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0, limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	now := s.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	query := `
		INSERT INTO tasks (title, description, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullString(task.Description),
		string(task.State),
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("title", task.Title),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContext(ctx).Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return task, nil
}

// Update implements store.TaskStore.Update.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = s.now()
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, state = $3, updated_at = $4
		WHERE id = $5
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullString(task.Description),
		string(task.State),
		task.UpdatedAt,
		task.ID,
	).Scan(&task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrTaskNotFound
		}
		logger.FromContext(ctx).Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// ExistsByTitle implements store.TaskStore.ExistsByTitle.
func (s *PostgresTaskStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM tasks WHERE title = $1)", title,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// FindDuplicateTitles implements store.TaskStore.FindDuplicateTitles.
func (s *PostgresTaskStore) FindDuplicateTitles(ctx context.Context) ([]store.DuplicateTitle, error) {
	query := `
		SELECT title, COUNT(*)
		FROM tasks
		GROUP BY title
		HAVING COUNT(*) > 1
		ORDER BY title
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var dups []store.DuplicateTitle
	for rows.Next() {
		var d store.DuplicateTitle
		if err := rows.Scan(&d.Title, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate row: %w", err)
		}
		dups = append(dups, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating duplicate rows: %w", err)
	}
	return dups, nil
}

// DeleteDuplicateTitles implements store.TaskStore.DeleteDuplicateTitles.
func (s *PostgresTaskStore) DeleteDuplicateTitles(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM tasks t
		USING tasks keep
		WHERE t.title = keep.title AND t.id > keep.id
	`
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t     domain.Task
		desc  sql.NullString
		state string
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &state, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseTaskState(state)
	if err != nil {
		return nil, fmt.Errorf("task %d has unknown state %q: %w", t.ID, state, err)
	}
	t.State = parsed
	if desc.Valid {
		t.Description = &desc.String
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

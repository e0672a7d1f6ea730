package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tarefas-api/internal/domain"
)

// Pagination bounds for TaskFilter.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// TaskFilter selects and pages tasks. State is optional; Skip and Limit are
// applied after filtering.
type TaskFilter struct {
	State *domain.TaskState
	Skip  int
	Limit int
}

// DuplicateTitle reports a title shared by more than one task.
type DuplicateTitle struct {
	Title string
	Count int64
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// List returns tasks matching the filter ordered by ID.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// Create inserts the task and sets its ID from the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update replaces title, description, state and updated_at of an existing task.
	// CreatedAt is never written. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task. Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// ExistsByTitle reports whether a task with exactly this title exists (case-sensitive).
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// FindDuplicateTitles lists titles that appear on more than one task.
	FindDuplicateTitles(ctx context.Context) ([]DuplicateTitle, error)

	// DeleteDuplicateTitles removes every task whose title also belongs to a
	// task with a lower ID, returning the number of rows removed.
	DeleteDuplicateTitles(ctx context.Context) (int64, error)

	// WithTx returns a TaskStore that runs on the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}

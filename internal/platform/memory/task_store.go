package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// TaskStore keeps tasks in a map guarded by a mutex. It follows the same
// contract as the Postgres store, except that WithTx ignores the
// transaction.
type TaskStore struct {
	mu     sync.Mutex
	tasks  map[int64]domain.Task
	nextID int64
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore. IDs start at 1.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[int64]domain.Task), nextID: 1}
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(_ context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.sortedLocked() {
		if filter.State != nil && t.State != *filter.State {
			continue
		}
		matched = append(matched, t)
	}

	if filter.Skip >= len(matched) {
		return []domain.Task{}, nil
	}
	matched = matched[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(_ context.Context, task *domain.Task) error {
	if task == nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID
	s.nextID++
	s.tasks[task.ID] = *task
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

// Update implements store.TaskStore.Update. CreatedAt keeps its stored
// value and is copied back into task.
func (s *TaskStore) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	s.tasks[task.ID] = *task
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// ExistsByTitle implements store.TaskStore.ExistsByTitle.
func (s *TaskStore) ExistsByTitle(_ context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// FindDuplicateTitles implements store.TaskStore.FindDuplicateTitles.
func (s *TaskStore) FindDuplicateTitles(_ context.Context) ([]store.DuplicateTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64)
	for _, t := range s.tasks {
		counts[t.Title]++
	}

	var dups []store.DuplicateTitle
	for title, n := range counts {
		if n > 1 {
			dups = append(dups, store.DuplicateTitle{Title: title, Count: n})
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Title < dups[j].Title })
	return dups, nil
}

// DeleteDuplicateTitles implements store.TaskStore.DeleteDuplicateTitles.
// The task with the lowest ID for each title survives.
func (s *TaskStore) DeleteDuplicateTitles(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var removed int64
	for _, t := range s.sortedLocked() {
		if seen[t.Title] {
			delete(s.tasks, t.ID)
			removed++
			continue
		}
		seen[t.Title] = true
	}
	return removed, nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(*sql.Tx) store.TaskStore {
	return s
}

func (s *TaskStore) sortedLocked() []domain.Task {
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore is a testify mock of store.TaskStore. WithTx returns the
// receiver so expectations hold inside transactions.
type MockTaskStore struct {
	mock.Mock
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// List is a mock implementation of store.TaskStore.List
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

// Create is a mock implementation of store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExistsByTitle is a mock implementation of store.TaskStore.ExistsByTitle
func (m *MockTaskStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

// FindDuplicateTitles is a mock implementation of store.TaskStore.FindDuplicateTitles
func (m *MockTaskStore) FindDuplicateTitles(ctx context.Context) ([]store.DuplicateTitle, error) {
	args := m.Called(ctx)
	dups, _ := args.Get(0).([]store.DuplicateTitle)
	return dups, args.Error(1)
}

// DeleteDuplicateTitles is a mock implementation of store.TaskStore.DeleteDuplicateTitles
func (m *MockTaskStore) DeleteDuplicateTitles(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	return m
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/mocks"
	"github.com/phrazzld/tarefas-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestTaskService(t *testing.T) (*taskServiceImpl, *mocks.MockTaskStore) {
	t.Helper()
	m := &mocks.MockTaskStore{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	svc, err := NewTaskService(m, nil)
	require.NoError(t, err)
	impl := svc.(*taskServiceImpl)
	impl.now = func() time.Time { return testNow }
	return impl, m
}

func TestNewTaskService_NilStore(t *testing.T) {
	_, err := NewTaskService(nil, nil)
	assert.True(t, domain.IsValidationError(err))
}

func TestTaskService_CreateTask(t *testing.T) {
	t.Run("stores validated task", func(t *testing.T) {
		svc, m := newTestTaskService(t)
		m.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Title == "Comprar pão" && task.State == domain.TaskStatePending &&
				task.CreatedAt.Equal(testNow) && task.UpdatedAt.Equal(testNow)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Task).ID = 1
		}).Return(nil).Once()

		task, err := svc.CreateTask(context.Background(), domain.TaskInput{
			Title: "Comprar pão",
			State: domain.TaskStatePending,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), task.ID)
	})

	t.Run("validation never reaches the store", func(t *testing.T) {
		svc, _ := newTestTaskService(t)
		_, err := svc.CreateTask(context.Background(), domain.TaskInput{Title: "", State: domain.TaskStatePending})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("store failure", func(t *testing.T) {
		svc, m := newTestTaskService(t)
		dbErr := errors.New("db down")
		m.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

		_, err := svc.CreateTask(context.Background(), domain.TaskInput{Title: "x", State: domain.TaskStateDone})
		assert.ErrorIs(t, err, dbErr)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	svc, m := newTestTaskService(t)
	m.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{ID: 1, Title: "a"}, nil).Once()
	m.On("GetByID", mock.Anything, int64(2)).Return(nil, store.ErrTaskNotFound).Once()

	task, err := svc.GetTask(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", task.Title)

	_, err = svc.GetTask(context.Background(), 2)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Run("defaults updated_at to now", func(t *testing.T) {
		svc, m := newTestTaskService(t)
		created := testNow.Add(-time.Hour)
		m.On("Update", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.ID == 7 && task.UpdatedAt.Equal(testNow) && task.State == domain.TaskStateInProgress
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Task).CreatedAt = created
		}).Return(nil).Once()

		task, err := svc.UpdateTask(context.Background(), 7, domain.TaskInput{
			Title: "novo",
			State: domain.TaskStateInProgress,
		})
		require.NoError(t, err)
		assert.Equal(t, created, task.CreatedAt)
	})

	t.Run("caller supplied updated_at", func(t *testing.T) {
		svc, m := newTestTaskService(t)
		earlier := testNow.Add(-24 * time.Hour)
		m.On("Update", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.UpdatedAt.Equal(earlier)
		})).Return(nil).Once()

		_, err := svc.UpdateTask(context.Background(), 7, domain.TaskInput{
			Title:     "novo",
			State:     domain.TaskStateDone,
			UpdatedAt: earlier,
		})
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTestTaskService(t)
		m.On("Update", mock.Anything, mock.Anything).Return(store.ErrTaskNotFound).Once()

		_, err := svc.UpdateTask(context.Background(), 99, domain.TaskInput{Title: "x", State: domain.TaskStateDone})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("invalid state", func(t *testing.T) {
		svc, _ := newTestTaskService(t)
		_, err := svc.UpdateTask(context.Background(), 1, domain.TaskInput{Title: "x", State: "archived"})
		assert.ErrorIs(t, err, domain.ErrInvalidTaskState)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	svc, m := newTestTaskService(t)
	m.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	m.On("Delete", mock.Anything, int64(2)).Return(store.ErrTaskNotFound).Once()

	assert.NoError(t, svc.DeleteTask(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteTask(context.Background(), 2), store.ErrTaskNotFound)
}

func TestTaskService_ListTasks(t *testing.T) {
	pending := domain.TaskStatePending
	bogus := domain.TaskState("archived")

	tests := []struct {
		name    string
		filter  store.TaskFilter
		wantErr error
	}{
		{"defaults", store.TaskFilter{Limit: 10}, nil},
		{"with state", store.TaskFilter{State: &pending, Skip: 5, Limit: 100}, nil},
		{"negative skip", store.TaskFilter{Skip: -1, Limit: 10}, ErrInvalidPagination},
		{"zero limit", store.TaskFilter{Limit: 0}, ErrInvalidPagination},
		{"limit too large", store.TaskFilter{Limit: 101}, ErrInvalidPagination},
		{"unknown state", store.TaskFilter{State: &bogus, Limit: 10}, domain.ErrInvalidTaskState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestTaskService(t)
			if tt.wantErr == nil {
				m.On("List", mock.Anything, tt.filter).Return([]domain.Task{{ID: 1}}, nil).Once()
			}

			tasks, err := svc.ListTasks(context.Background(), tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tasks, 1)
		})
	}
}

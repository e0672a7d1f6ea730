package memory

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTasks(t *testing.T, s *TaskStore, titles ...string) {
	t.Helper()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range titles {
		state := domain.TaskStatePending
		if i%2 == 1 {
			state = domain.TaskStateDone
		}
		require.NoError(t, s.Create(context.Background(), &domain.Task{
			Title: title, State: state, CreatedAt: now, UpdatedAt: now,
		}))
	}
}

func TestTaskStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	task := &domain.Task{Title: "Comprar pão", State: domain.TaskStatePending, CreatedAt: created, UpdatedAt: created}
	require.NoError(t, s.Create(ctx, task))
	assert.Equal(t, int64(1), task.ID)

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *got)

	update := &domain.Task{ID: task.ID, Title: "Comprar leite", State: domain.TaskStateDone, UpdatedAt: created.Add(time.Hour)}
	require.NoError(t, s.Update(ctx, update))
	assert.Equal(t, created, update.CreatedAt)

	got, err = s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comprar leite", got.Title)

	require.NoError(t, s.Delete(ctx, task.ID))
	_, err = s.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)
	assert.ErrorIs(t, s.Update(ctx, update), store.ErrTaskNotFound)
}

func TestTaskStore_ListFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore()
	seedTasks(t, s, "a", "b", "c", "d", "e")

	all, err := s.List(ctx, store.TaskFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := s.List(ctx, store.TaskFilter{Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, all[1:3], page)

	done := domain.TaskStateDone
	filtered, err := s.List(ctx, store.TaskFilter{State: &done, Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, task := range filtered {
		assert.Equal(t, domain.TaskStateDone, task.State)
	}

	empty, err := s.List(ctx, store.TaskFilter{Skip: 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskStore_Duplicates(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore()
	seedTasks(t, s, "x", "y", "x", "z", "x", "y")

	exists, err := s.ExistsByTitle(ctx, "x")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = s.ExistsByTitle(ctx, "X")
	require.NoError(t, err)
	assert.False(t, exists)

	dups, err := s.FindDuplicateTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.DuplicateTitle{{Title: "x", Count: 3}, {Title: "y", Count: 2}}, dups)

	removed, err := s.DeleteDuplicateTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	remaining, err := s.List(ctx, store.TaskFilter{Limit: 10})
	require.NoError(t, err)
	ids := make([]int64, len(remaining))
	for i, task := range remaining {
		ids[i] = task.ID
	}
	assert.Equal(t, []int64{1, 2, 4}, ids)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/tarefas-api/internal/mocks"
	"github.com/phrazzld/tarefas-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceService(t *testing.T) {
	t.Run("report", func(t *testing.T) {
		m := &mocks.MockTaskStore{}
		dups := []store.DuplicateTitle{{Title: "a", Count: 2}}
		m.On("FindDuplicateTitles", mock.Anything).Return(dups, nil).Once()

		got, err := NewMaintenanceService(nil, m, nil).ReportDuplicates(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dups, got)
		m.AssertExpectations(t)
	})

	t.Run("remove commits", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		m := &mocks.MockTaskStore{}
		m.On("DeleteDuplicateTitles", mock.Anything).Return(int64(4), nil).Once()

		n, err := NewMaintenanceService(db, m, nil).RemoveDuplicates(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("remove rolls back on error", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		dbErr := errors.New("lock timeout")
		m := &mocks.MockTaskStore{}
		m.On("DeleteDuplicateTitles", mock.Anything).Return(int64(0), dbErr).Once()

		n, err := NewMaintenanceService(db, m, nil).RemoveDuplicates(context.Background())
		assert.ErrorIs(t, err, dbErr)
		assert.Zero(t, n)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

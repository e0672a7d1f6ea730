package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/platform/memory"
	"github.com/phrazzld/tarefas-api/internal/platform/postgres"
)

func TestNewUserStore(t *testing.T) {
	log, logs := logger.NewTestLogger()

	cfg := testConfig("http://example.invalid/todos")
	assert.IsType(t, &memory.StaticUserStore{}, newUserStore(cfg, log, nil))
	assert.NotContains(t, logs.String(), "no static users configured")

	cfg.Auth.Users = nil
	newUserStore(cfg, log, nil)
	assert.Contains(t, logs.String(), "no static users configured")

	cfg.Auth.UserStore = "postgres"
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.IsType(t, &postgres.PostgresUserStore{}, newUserStore(cfg, log, db))
}

func TestNewApplication(t *testing.T) {
	log, _ := logger.NewTestLogger()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig("http://example.invalid/todos")
	app, err := newApplication(cfg, log, db)
	require.NoError(t, err)
	assert.IsType(t, &postgres.PostgresTaskStore{}, app.taskStore)
	assert.NotNil(t, app.cache)
	assert.NotNil(t, app.setupRouter())

	cfg.Cache.Enabled = false
	app, err = newApplication(cfg, log, db)
	require.NoError(t, err)
	assert.Nil(t, app.cache)

	cfg.Auth.JWTSecret = "short"
	_, err = newApplication(cfg, log, db)
	assert.Error(t, err)
}

func TestCleanupClosesDatabase(t *testing.T) {
	log, logs := logger.NewTestLogger()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	app, err := newApplication(testConfig("http://example.invalid/todos"), log, db)
	require.NoError(t, err)
	app.cleanup()

	require.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, logs.String(), "Response cache statistics")
}

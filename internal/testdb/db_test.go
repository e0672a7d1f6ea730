package testdb

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TAREFAS_TEST_DB_URL", "")
	assert.Empty(t, GetTestDatabaseURL())
	assert.False(t, IsIntegrationTestEnvironment())

	t.Setenv("TAREFAS_TEST_DB_URL", "postgres://fallback")
	assert.Equal(t, "postgres://fallback", GetTestDatabaseURL())

	t.Setenv("DATABASE_URL", "postgres://primary")
	assert.Equal(t, "postgres://primary", GetTestDatabaseURL())
	assert.True(t, IsIntegrationTestEnvironment())
}

func TestWithTx_RollsBack(t *testing.T) {
	db := GetTestDBWithT(t)

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.Exec(`INSERT INTO tasks (title, state, created_at, updated_at)
			VALUES ('testdb rollback probe', 'pending', NOW(), NOW())`)
		require.NoError(t, err)
	})

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE title = 'testdb rollback probe'`).Scan(&n))
	assert.Zero(t, n)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// PostgresUserStore implements store.UserStore against the users table.
// Users are provisioned out of band; the API only reads them.
type PostgresUserStore struct {
	db store.DBTX
}

// NewPostgresUserStore creates a PostgresUserStore.
func NewPostgresUserStore(db store.DBTX) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// GetByUsername implements store.UserStore.GetByUsername.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, full_name, email, hashed_password, disabled
		FROM users
		WHERE username = $1
	`
	var u domain.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&u.Username,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.Disabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContext(ctx).Error("failed to get user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &u, nil
}

package store

import (
	"context"

	"github.com/phrazzld/tarefas-api/internal/domain"
)

// UserStore is the credential lookup used for authentication.
// Implementations may be static (configuration) or database backed.
type UserStore interface {
	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

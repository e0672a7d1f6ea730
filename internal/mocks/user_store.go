package mocks

import (
	"context"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// MockUserStore implements store.UserStore with a fixed user set unless
// GetByUsernameFn is provided.
type MockUserStore struct {
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	Users           map[string]*domain.User
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// GetByUsername implements store.UserStore.GetByUsername
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if u, ok := m.Users[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrUserNotFound
}

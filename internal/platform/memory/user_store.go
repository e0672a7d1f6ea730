package memory

import (
	"context"

	"github.com/phrazzld/tarefas-api/internal/config"
	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// StaticUserStore serves users from a fixed set loaded at startup. It is
// read-only and safe for concurrent use.
type StaticUserStore struct {
	users map[string]domain.User
}

// Ensure StaticUserStore implements store.UserStore interface
var _ store.UserStore = (*StaticUserStore)(nil)

// NewStaticUserStore builds a store from configured users. Later entries
// win when a username is repeated.
func NewStaticUserStore(users []config.StaticUser) *StaticUserStore {
	m := make(map[string]domain.User, len(users))
	for _, u := range users {
		m[u.Username] = domain.User{
			Username:     u.Username,
			FullName:     u.FullName,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Disabled:     u.Disabled,
		}
	}
	return &StaticUserStore{users: m}
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *StaticUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// Len returns the number of configured users.
func (s *StaticUserStore) Len() int {
	return len(s.users)
}

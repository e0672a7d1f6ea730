package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore map[string]domain.User

func (f fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if username == "explode" {
		return nil, errors.New("connection refused")
	}
	u, ok := f[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

type recordingVerifier struct {
	inner  PasswordVerifier
	hashes []string
}

func (r *recordingVerifier) Compare(hash, password string) error {
	r.hashes = append(r.hashes, hash)
	return r.inner.Compare(hash, password)
}

func TestAuthenticator(t *testing.T) {
	t.Parallel()

	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash("senha123")
	require.NoError(t, err)

	users := fakeUserStore{
		"usuario1": {Username: "usuario1", FullName: "Usuário Um", PasswordHash: hash},
		"inativo":  {Username: "inativo", PasswordHash: hash, Disabled: true},
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		a := NewAuthenticator(users, NewBcryptVerifier())
		u, err := a.Authenticate(context.Background(), "usuario1", "senha123")
		require.NoError(t, err)
		assert.Equal(t, "usuario1", u.Username)
	})

	rejections := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "usuario1", "errada"},
		{"unknown user", "fantasma", "senha123"},
		{"disabled user", "inativo", "senha123"},
		{"empty password", "usuario1", ""},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := NewAuthenticator(users, NewBcryptVerifier())
			u, err := a.Authenticate(context.Background(), tt.username, tt.password)
			assert.Nil(t, u)
			assert.Equal(t, ErrInvalidCredentials, err)
		})
	}

	t.Run("unknown user still compares", func(t *testing.T) {
		t.Parallel()
		v := &recordingVerifier{inner: NewBcryptVerifier()}
		a := NewAuthenticator(users, v)
		_, err := a.Authenticate(context.Background(), "fantasma", "senha123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, []string{dummyHash}, v.hashes)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		t.Parallel()
		a := NewAuthenticator(users, NewBcryptVerifier())
		_, err := a.Authenticate(context.Background(), "explode", "senha123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

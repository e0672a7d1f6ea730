package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// dummyHash is compared against when the user does not exist so that the
// response time of an unknown user matches a wrong password.
const dummyHash = "$2b$10$GsDCcIUGy/20OixNc7a.2O6naj/rcSVV2IfrhIF3Iv5rDrFkUI6fa"

// Authenticator checks a username and password pair against a UserStore.
type Authenticator struct {
	users    store.UserStore
	verifier PasswordVerifier
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(users store.UserStore, verifier PasswordVerifier) *Authenticator {
	return &Authenticator{users: users, verifier: verifier}
}

// Authenticate returns the user when the credentials are valid. Unknown
// users, wrong passwords and disabled accounts all yield ErrInvalidCredentials.
// Store failures other than not found are returned wrapped.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = a.verifier.Compare(dummyHash, password)
		log.Debug("login rejected", slog.String("reason", "unknown_user"))
		return nil, ErrInvalidCredentials
	}

	hash := user.PasswordHash
	if hash == "" {
		hash = dummyHash
	}
	if err := a.verifier.Compare(hash, password); err != nil {
		log.Debug("login rejected", slog.String("reason", "password_mismatch"))
		return nil, ErrInvalidCredentials
	}
	if !user.CanAuthenticate() {
		log.Debug("login rejected", slog.String("reason", "account_disabled"))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

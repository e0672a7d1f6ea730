package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
)

// CredentialAuthenticator checks a username and password pair.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	authenticator CredentialAuthenticator
	jwtService    auth.JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator CredentialAuthenticator, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtService:    jwtService,
	}
}

// Login handles POST /login. Credentials arrive as form fields; any
// credential failure yields the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, msgInvalidBody)
		return
	}

	req := LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "validate login")
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "authenticate")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), user.Username)
	if err != nil {
		log.Error("failed to generate token", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	log.Info("user logged in", slog.String("username", user.Username))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}

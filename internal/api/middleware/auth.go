package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
)

const notAuthenticated = "Not authenticated"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token and stores its subject in the
// request context. A missing, malformed, expired or forged token gets the
// same 401 response.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			rejectUnauthenticated(w, r, "missing or malformed authorization header")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			rejectUnauthenticated(w, r, err.Error())
			return
		}

		ctx := shared.WithSubject(r.Context(), claims.Subject)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.String("subject", claims.Subject)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubject extracts the authenticated subject from the request context.
func GetSubject(r *http.Request) (string, bool) {
	return shared.GetSubject(r.Context())
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request, reason string) {
	logger.FromContext(r.Context()).Debug("request not authenticated", slog.String("reason", reason))
	shared.RespondWithError(w, r, http.StatusUnauthorized, notAuthenticated,
		shared.WithHeader("WWW-Authenticate", "Bearer"))
}

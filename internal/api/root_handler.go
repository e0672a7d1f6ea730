package api

import (
	"net/http"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Bem-vindo à API de Gerenciamento de Tarefas"

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

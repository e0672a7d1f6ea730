package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
)

// ImportRunner runs one reconciliation against the external source.
type ImportRunner interface {
	Run(ctx context.Context) (int, error)
}

// ImportHandler serves POST /importacoes.
type ImportHandler struct {
	runner ImportRunner
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(runner ImportRunner) *ImportHandler {
	return &ImportHandler{runner: runner}
}

// RunImport triggers a reconciliation and reports how many tasks were
// inserted. An upstream failure maps to 502 with nothing written.
func (h *ImportHandler) RunImport(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.runner.Run(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "import tasks")
		return
	}

	logger.FromContext(r.Context()).Info("import finished", slog.Int("inserted", inserted))
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{Inseridas: inserted})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// getPathID extracts a positive integer ID from the URL path.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// parseListQuery reads estado, skip and limit from the query string and
// converts them into a store filter.
func parseListQuery(r *http.Request) (store.TaskFilter, error) {
	q := r.URL.Query()
	query := ListQuery{
		Estado: q.Get("estado"),
		Skip:   0,
		Limit:  store.DefaultLimit,
	}

	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError("skip", "must be an integer", domain.ErrValidation)
		}
		query.Skip = skip
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError("limit", "must be an integer", domain.ErrValidation)
		}
		query.Limit = limit
	}

	if err := shared.ValidateRequest(query); err != nil {
		return store.TaskFilter{}, err
	}

	filter := store.TaskFilter{Skip: query.Skip, Limit: query.Limit}
	if query.Estado != "" {
		state, err := ParseEstado(query.Estado)
		if err != nil {
			return store.TaskFilter{}, err
		}
		filter.State = &state
	}
	return filter, nil
}

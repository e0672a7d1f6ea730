package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/importer"
	"github.com/phrazzld/tarefas-api/internal/service"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
	"github.com/phrazzld/tarefas-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"task not found wrapped", service.NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound), http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"validation", domain.NewValidationError("title", "is required", domain.ErrEmptyTitle), http.StatusUnprocessableEntity},
		{"pagination", fmt.Errorf("%w: limit", service.ErrInvalidPagination), http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"upstream", fmt.Errorf("%w: timeout", importer.ErrUpstreamFetch), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tarefa não encontrada", GetSafeErrorMessage(fmt.Errorf("get: %w", store.ErrTaskNotFound)))
	assert.Equal(t, "Not authenticated", GetSafeErrorMessage(auth.ErrInvalidToken))
	assert.Equal(t, "Invalid titulo: is required",
		GetSafeErrorMessage(domain.NewValidationError("title", "is required", domain.ErrEmptyTitle)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("pq: SELECT * FROM tasks")))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

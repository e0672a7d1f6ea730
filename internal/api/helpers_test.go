package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/cache"
	"github.com/phrazzld/tarefas-api/internal/platform/memory"
	"github.com/phrazzld/tarefas-api/internal/service"
	"github.com/phrazzld/tarefas-api/internal/store"
)

type taskFixture struct {
	router http.Handler
	store  *memory.TaskStore
	cache  *cache.Cache
}

func newTaskFixture(t *testing.T, withCache bool) *taskFixture {
	t.Helper()

	tasks := memory.NewTaskStore()
	svc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)

	var c *cache.Cache
	if withCache {
		c = cache.New()
	}
	h := NewTaskHandler(svc, c, time.Minute, 30*time.Second)

	r := chi.NewRouter()
	r.Get("/tarefas", h.ListTasks)
	r.Post("/tarefas", h.CreateTask)
	r.Get("/tarefas/{id}", h.GetTask)
	r.Put("/tarefas/{id}", h.UpdateTask)
	r.Delete("/tarefas/{id}", h.DeleteTask)

	return &taskFixture{router: r, store: tasks, cache: c}
}

func (f *taskFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) TaskResponse {
	t.Helper()
	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func strPtr(s string) *string { return &s }

func listAll() store.TaskFilter { return store.TaskFilter{Limit: store.MaxLimit} }

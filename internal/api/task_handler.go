package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/cache"
	"github.com/phrazzld/tarefas-api/internal/service"
)

// Cache routes. The list key includes every query parameter, so different
// filters and pages never share an entry.
const (
	listCacheRoute = "GET /tarefas"
	itemCacheRoute = "GET /tarefas/{id}"
)

// CacheStatusHeader reports whether a read was served from the cache.
const CacheStatusHeader = "X-Cache"

// TaskHandler serves the /tarefas endpoints.
type TaskHandler struct {
	service service.TaskService
	cache   *cache.Cache
	listTTL time.Duration
	itemTTL time.Duration
}

// NewTaskHandler creates a TaskHandler. A nil cache disables response
// caching.
func NewTaskHandler(svc service.TaskService, c *cache.Cache, listTTL, itemTTL time.Duration) *TaskHandler {
	return &TaskHandler{
		service: svc,
		cache:   c,
		listTTL: listTTL,
		itemTTL: itemTTL,
	}
}

// ListTasks handles GET /tarefas.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "parse list query")
		return
	}

	key := cache.Key(listCacheRoute, r.URL.Query())
	body, hit, err := h.cached(r.Context(), key, h.listTTL, func(ctx context.Context) ([]byte, error) {
		tasks, err := h.service.ListTasks(ctx, filter)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tasksToResponse(tasks))
	})
	if err != nil {
		HandleAPIError(w, r, err, "list tasks")
		return
	}

	writeCached(w, hit, body)
}

// GetTask handles GET /tarefas/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "parse task id")
		return
	}

	key := cache.Key(itemCacheRoute, url.Values{"id": {strconv.FormatInt(id, 10)}})
	body, hit, err := h.cached(r.Context(), key, h.itemTTL, func(ctx context.Context) ([]byte, error) {
		task, err := h.service.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(taskToResponse(*task))
	})
	if err != nil {
		HandleAPIError(w, r, err, "get task")
		return
	}

	writeCached(w, hit, body)
}

// CreateTask handles POST /tarefas.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, msgInvalidBody, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "validate task")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		HandleAPIError(w, r, err, "validate task")
		return
	}

	task, err := h.service.CreateTask(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(*task))
}

// UpdateTask handles PUT /tarefas/{id}. The body replaces every mutable
// field of the task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "parse task id")
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, msgInvalidBody, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "validate task")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		HandleAPIError(w, r, err, "validate task")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, "update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(*task))
}

// DeleteTask handles DELETE /tarefas/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "parse task id")
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cached runs compute through the cache when one is configured. Cached
// entries may be stale for up to the TTL after a write.
func (h *TaskHandler) cached(
	ctx context.Context,
	key string,
	ttl time.Duration,
	compute cache.ComputeFunc,
) ([]byte, bool, error) {
	if h.cache == nil {
		body, err := compute(ctx)
		if err != nil {
			return nil, false, err
		}
		return body, false, nil
	}

	body, hit, err := h.cache.GetOrCompute(ctx, key, ttl, compute)
	if err != nil {
		return nil, false, fmt.Errorf("cache %s: %w", key, err)
	}
	return body, hit, nil
}

func writeCached(w http.ResponseWriter, hit bool, body []byte) {
	if hit {
		w.Header().Set(CacheStatusHeader, "HIT")
	} else {
		w.Header().Set(CacheStatusHeader, "MISS")
	}
	shared.RespondWithRawJSON(w, http.StatusOK, body)
}

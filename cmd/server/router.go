package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/tarefas-api/internal/api"
	apiMiddleware "github.com/phrazzld/tarefas-api/internal/api/middleware"
	"github.com/phrazzld/tarefas-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	authHandler := api.NewAuthHandler(app.authenticator, app.jwtService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService, app.cache,
		app.config.Cache.ListTTL, app.config.Cache.ItemTTL)
	importHandler := api.NewImportHandler(app.reconciler)

	r.Get("/", api.Root)
	r.Get("/health", api.Health)

	r.Group(func(r chi.Router) {
		if app.config.RateLimit.Enabled {
			limiter := apiMiddleware.NewRateLimiter(app.config.RateLimit.LoginPerSecond, app.config.RateLimit.LoginBurst)
			r.Use(limiter.Limit)
		}
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/tarefas", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})

		r.Post("/importacoes", importHandler.RunImport)
	})

	return r
}

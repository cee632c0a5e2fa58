package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"relevance-workbench/internal/handlers"
	"relevance-workbench/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Workbench service.Workbench
	// Database is checked by the health endpoint.
	Database handlers.Pinger
	// TaskChannel is checked by the health endpoint. Nil when tasks are
	// tracked in memory.
	TaskChannel handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	sessions := handlers.NewSessionHandler(deps.Workbench)
	rulesets := handlers.NewRulesetHandler(deps.Workbench)
	history := handlers.NewHistoryHandler(deps.Workbench)
	configs := handlers.NewConfigurationHandler(deps.Workbench)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Database, deps.TaskChannel))
		r.Method(http.MethodGet, "/status", handlers.NewStatusHandler(deps.Workbench))
		r.Method(http.MethodPost, "/knobs", handlers.NewKnobsHandler(deps.Workbench))

		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Post("/sessions", sessions.Open)
			r.Post("/rulesets", rulesets.Create)
			r.Get("/query-templates/history", history.JSON)
			r.Get("/query-templates/history.html", history.HTML)
		})

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", sessions.Get)
			r.Delete("/", sessions.Close)
			r.Post("/window/{direction}", sessions.LoadMore)
			r.Post("/run", sessions.Run)
			r.Delete("/alerts/{alertID}", sessions.DismissAlert)
		})

		r.Get("/rulesets/{rulesetID}/versions/history", rulesets.History)

		r.Route("/search-configurations/{id}", func(r chi.Router) {
			r.Get("/", configs.Get)
			r.Post("/executions", configs.RecordExecution)
		})
	})

	return r
}

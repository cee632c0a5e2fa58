package handlers

import (
	"net/http"

	"relevance-workbench/internal/service"
)

// StatusHandler reports background task activity.
type StatusHandler struct {
	workbench service.Workbench
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(workbench service.Workbench) *StatusHandler {
	return &StatusHandler{workbench: workbench}
}

// ServeHTTP handles GET /api/status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, ctx, http.StatusOK, h.workbench.Status(ctx))
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"relevance-workbench/internal/contextutil"
	"relevance-workbench/internal/service"
)

// ConfigurationHandler serves search configurations and their executions.
type ConfigurationHandler struct {
	workbench service.Workbench
}

// NewConfigurationHandler creates a new ConfigurationHandler.
func NewConfigurationHandler(workbench service.Workbench) *ConfigurationHandler {
	return &ConfigurationHandler{workbench: workbench}
}

// Get handles GET /api/search-configurations/{id}.
func (h *ConfigurationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	detail, err := h.workbench.GetConfiguration(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get search configuration")
		return
	}
	writeJSON(w, ctx, http.StatusOK, detail)
}

// RecordExecution handles POST /api/search-configurations/{id}/executions.
// The execution service posts its results here.
func (h *ConfigurationHandler) RecordExecution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RecordExecutionRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exec, err := h.workbench.RecordExecution(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to record execution")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, exec)
}

package handlers

import (
	"net/http"

	"relevance-workbench/internal/contextutil"
	"relevance-workbench/internal/service"
)

// KnobsHandler extracts and reconciles knobs for edited template text.
type KnobsHandler struct {
	workbench service.Workbench
}

// NewKnobsHandler creates a new KnobsHandler.
func NewKnobsHandler(workbench service.Workbench) *KnobsHandler {
	return &KnobsHandler{workbench: workbench}
}

// ServeHTTP handles POST /api/knobs.
func (h *KnobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req service.EditQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.workbench.EditQuery(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to extract knobs")
		return
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

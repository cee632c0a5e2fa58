package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"relevance-workbench/internal/contextutil"
	"relevance-workbench/internal/service"
)

// RulesetHandler serves ruleset containers and their version history.
type RulesetHandler struct {
	workbench service.Workbench
}

// NewRulesetHandler creates a new RulesetHandler.
func NewRulesetHandler(workbench service.Workbench) *RulesetHandler {
	return &RulesetHandler{workbench: workbench}
}

// Create handles POST /api/projects/{projectID}/rulesets.
func (h *RulesetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateRulesetRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ProjectID = chi.URLParam(r, "projectID")

	rs, err := h.workbench.CreateRuleset(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create ruleset")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, rs)
}

// History handles GET /api/rulesets/{rulesetID}/versions/history.
func (h *RulesetHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hist, err := h.workbench.RulesetHistory(ctx, chi.URLParam(r, "rulesetID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load ruleset history")
		return
	}
	writeJSON(w, ctx, http.StatusOK, hist)
}

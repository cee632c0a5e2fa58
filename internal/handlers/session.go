package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"relevance-workbench/internal/contextutil"
	"relevance-workbench/internal/lab"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/service"
)

// SessionHandler serves workbench sessions: their window, runs and alerts.
type SessionHandler struct {
	workbench service.Workbench
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(workbench service.Workbench) *SessionHandler {
	return &SessionHandler{workbench: workbench}
}

// RunErrorResponse is returned when a run reached execution and failed there.
// The session carries the alert with the failure guidance.
type RunErrorResponse struct {
	Error   string          `json:"error"`
	Outcome *runner.Outcome `json:"outcome"`
	Session lab.View        `json:"session"`
}

// Open handles POST /api/projects/{projectID}/sessions.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.OpenSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ProjectID = chi.URLParam(r, "projectID")

	view, err := h.workbench.OpenSession(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to open session")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, view)
}

// Get handles GET /api/sessions/{sessionID}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.workbench.Session(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get session")
		return
	}
	writeJSON(w, ctx, http.StatusOK, view)
}

// Close handles DELETE /api/sessions/{sessionID}.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.workbench.CloseSession(ctx, chi.URLParam(r, "sessionID")); err != nil {
		handleServiceError(w, ctx, err, "Failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadMore handles POST /api/sessions/{sessionID}/window/{direction}.
func (h *SessionHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.workbench.LoadMore(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "direction"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load configurations")
		return
	}
	writeJSON(w, ctx, http.StatusOK, view)
}

// Run handles POST /api/sessions/{sessionID}/run.
func (h *SessionHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req service.RunRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.workbench.Run(ctx, chi.URLParam(r, "sessionID"), req)
	if err != nil {
		if resp.Outcome != nil {
			logger.WarnContext(ctx, "run failed during execution", "error", err)
			writeJSON(w, ctx, http.StatusBadGateway, RunErrorResponse{
				Error:   resp.Outcome.Result.Guidance(),
				Outcome: resp.Outcome,
				Session: resp.Session,
			})
			return
		}
		handleServiceError(w, ctx, err, "Failed to run search configuration")
		return
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// DismissAlert handles DELETE /api/sessions/{sessionID}/alerts/{alertID}.
func (h *SessionHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.workbench.DismissAlert(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "alertID")); err != nil {
		handleServiceError(w, ctx, err, "Failed to dismiss alert")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

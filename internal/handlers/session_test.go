package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/executor"
	"relevance-workbench/internal/lab"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/service"
	"relevance-workbench/internal/service/mocks"
)

func TestSessionHandler_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	wb := mocks.NewMockWorkbench(ctrl)
	h := NewSessionHandler(wb)

	wb.EXPECT().
		OpenSession(gomock.Any(), service.OpenSessionRequest{ProjectID: "p1", Backend: "SOLR"}).
		Return(lab.View{ID: "s1", ProjectID: "p1", Backend: backend.Solr}, nil)

	// The path parameter wins over the body.
	req := httptest.NewRequest(http.MethodPost, "/api/projects/p1/sessions", bytes.NewBufferString(`{"projectId":"other","backend":"SOLR"}`))
	req = withURLParams(req, map[string]string{"projectID": "p1"})
	w := httptest.NewRecorder()
	h.Open(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Open() status = %v, want %v", w.Code, http.StatusCreated)
	}
	var view lab.View
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.ID != "s1" || view.Backend != backend.Solr {
		t.Errorf("Open() view = %+v", view)
	}
}

func TestSessionHandler_Routes(t *testing.T) {
	notFound := fmt.Errorf("%w: session s9", service.ErrNotFound)
	conflict := fmt.Errorf("%w: window load already in progress", service.ErrConflict)

	tests := []struct {
		name       string
		call       func(h *SessionHandler) http.HandlerFunc
		method     string
		params     map[string]string
		mockSetup  func(*mocks.MockWorkbench)
		wantStatus int
	}{
		{
			name:   "get session",
			call:   func(h *SessionHandler) http.HandlerFunc { return h.Get },
			method: http.MethodGet,
			params: map[string]string{"sessionID": "s1"},
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().Session(gomock.Any(), "s1").Return(lab.View{ID: "s1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "get unknown session",
			call:   func(h *SessionHandler) http.HandlerFunc { return h.Get },
			method: http.MethodGet,
			params: map[string]string{"sessionID": "s9"},
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().Session(gomock.Any(), "s9").Return(lab.View{}, notFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "close session",
			call:   func(h *SessionHandler) http.HandlerFunc { return h.Close },
			method: http.MethodDelete,
			params: map[string]string{"sessionID": "s1"},
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().CloseSession(gomock.Any(), "s1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "load left",
			call:   func(h *SessionHandler) http.HandlerFunc { return h.LoadMore },
			method: http.MethodPost,
			params: map[string]string{"sessionID": "s1", "direction": "left"},
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().LoadMore(gomock.Any(), "s1", "left").Return(lab.View{ID: "s1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "load already in flight",
			call:   func(h *SessionHandler) http.HandlerFunc { return h.LoadMore },
			method: http.MethodPost,
			params: map[string]string{"sessionID": "s1", "direction": "right"},
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().LoadMore(gomock.Any(), "s1", "right").Return(lab.View{}, conflict)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "dismiss alert",
			call:   func(h *SessionHandler) http.HandlerFunc { return h.DismissAlert },
			method: http.MethodDelete,
			params: map[string]string{"sessionID": "s1", "alertID": "a1"},
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().DismissAlert(gomock.Any(), "s1", "a1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wb := mocks.NewMockWorkbench(ctrl)
			tt.mockSetup(wb)

			req := withURLParams(httptest.NewRequest(tt.method, "/", nil), tt.params)
			w := httptest.NewRecorder()
			tt.call(NewSessionHandler(wb))(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestSessionHandler_Run(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(*mocks.MockWorkbench)
		wantStatus int
		check      func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "completed run",
			body: `{"baseConfigurationId":"c1","query":"{}","rulesetIds":["r1"],"ruleset":{"rulesetId":"r1","value":{"rules":[],"conditions":[]}}}`,
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().
					Run(gomock.Any(), "s1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, req service.RunRequest) (service.RunResponse, error) {
						if req.BaseConfigurationID != "c1" || req.Ruleset == nil || req.Ruleset.RulesetID != "r1" || len(req.RulesetIDs) != 1 {
							t.Errorf("Run() request = %+v", req)
						}
						return service.RunResponse{Outcome: &runner.Outcome{}, Session: lab.View{ID: "s1"}}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "execution rejected",
			body: `{"query":"{}"}`,
			mockSetup: func(m *mocks.MockWorkbench) {
				out := &runner.Outcome{Result: executor.Result{Error: executor.ConnectionRefused}}
				m.EXPECT().
					Run(gomock.Any(), "s1", gomock.Any()).
					Return(service.RunResponse{Outcome: out, Session: lab.View{ID: "s1"}}, fmt.Errorf("%w: %w", service.ErrExternalService, runner.ErrExecutionFailed))
			},
			wantStatus: http.StatusBadGateway,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp RunErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				want := executor.Result{Error: executor.ConnectionRefused}.Guidance()
				if resp.Error != want || resp.Session.ID != "s1" || resp.Outcome == nil {
					t.Errorf("Run() response = %+v", resp)
				}
			},
		},
		{
			name: "run in progress",
			body: `{"query":"{}"}`,
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().
					Run(gomock.Any(), "s1", gomock.Any()).
					Return(service.RunResponse{}, fmt.Errorf("%w: %w", service.ErrConflict, runner.ErrRunInProgress))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "execution service unreachable",
			body: `{"query":"{}"}`,
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().
					Run(gomock.Any(), "s1", gomock.Any()).
					Return(service.RunResponse{Session: lab.View{ID: "s1"}}, fmt.Errorf("%w: %w", service.ErrExternalService, runner.ErrExecutorUnavailable))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "baseline of another project",
			body: `{"baseConfigurationId":"c9","query":"{}"}`,
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().
					Run(gomock.Any(), "s1", gomock.Any()).
					Return(service.RunResponse{Session: lab.View{ID: "s1"}}, fmt.Errorf("%w: search configuration c9 is not in project p1", service.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid JSON body",
			body:       `{"query":`,
			mockSetup:  func(m *mocks.MockWorkbench) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wb := mocks.NewMockWorkbench(ctrl)
			tt.mockSetup(wb)

			req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/run", bytes.NewBufferString(tt.body))
			req = withURLParams(req, map[string]string{"sessionID": "s1"})
			w := httptest.NewRecorder()
			NewSessionHandler(wb).Run(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Run() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

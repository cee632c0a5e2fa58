package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"relevance-workbench/internal/service"
	"relevance-workbench/internal/service/mocks"
	"relevance-workbench/internal/storage"
)

func TestConfigurationHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(*mocks.MockWorkbench)
		wantStatus int
	}{
		{
			name: "found",
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().GetConfiguration(gomock.Any(), "c1").Return(service.ConfigurationDetail{
					Configuration: &storage.SearchConfiguration{ID: "c1"},
					Phrases:       []storage.SearchPhraseExecution{},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			mockSetup: func(m *mocks.MockWorkbench) {
				m.EXPECT().GetConfiguration(gomock.Any(), "c1").Return(service.ConfigurationDetail{}, fmt.Errorf("%w: search configuration c1", service.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wb := mocks.NewMockWorkbench(ctrl)
			tt.mockSetup(wb)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "c1"})
			w := httptest.NewRecorder()
			NewConfigurationHandler(wb).Get(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestConfigurationHandler_RecordExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	wb := mocks.NewMockWorkbench(ctrl)
	wb.EXPECT().
		RecordExecution(gomock.Any(), "c1", service.RecordExecutionRequest{
			CombinedScore: 0.6,
			Phrases:       []service.PhraseResult{{Phrase: "shoes", TotalResults: 3}},
		}).
		Return(&storage.Execution{ID: "e1", SearchConfigurationID: "c1", CombinedScore: 0.6}, nil)

	body := `{"combinedScore":0.6,"phrases":[{"phrase":"shoes","totalResults":3}]}`
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)), map[string]string{"id": "c1"})
	w := httptest.NewRecorder()
	NewConfigurationHandler(wb).RecordExecution(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("RecordExecution() status = %v, want %v", w.Code, http.StatusCreated)
	}
	var exec storage.Execution
	if err := json.NewDecoder(w.Body).Decode(&exec); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if exec.ID != "e1" {
		t.Errorf("RecordExecution() id = %q, want e1", exec.ID)
	}
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"relevance-workbench/internal/service"
	"relevance-workbench/internal/service/mocks"
	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/versions"
)

func sampleHistory() service.TemplateHistory {
	base := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	t1 := "t1"
	list := []storage.QueryTemplate{
		{ID: "t1", ProjectID: "p1", Description: "baseline", Query: `{"match_all":{}}`, CreatedAt: base},
		{ID: "t2", ProjectID: "p1", ParentID: &t1, Description: "boost <b>title</b>", Query: `{"boost":"##title##"}`, CreatedAt: base.Add(time.Hour)},
	}
	roots := versions.BuildForest(list)
	return service.TemplateHistory{ProjectID: "p1", Roots: roots, Latest: &list[1], Lineage: []string{"t1", "t2"}, Count: 2, Depth: versions.Depth(roots)}
}

func TestTemplateHistoryMarkdown(t *testing.T) {
	md := string(templateHistoryMarkdown(sampleHistory()))

	for _, want := range []string{
		"Project `p1`: 2 versions, 2 generations deep.",
		"- `t1` 2026-03-01 09:30:00: baseline\n",
		"  - `t2` 2026-03-01 10:30:00: boost <b>title</b> **(latest)**\n",
		"## Latest: `t2`",
		"Derived from `t1`.",
		"~~~~\n{\"boost\":\"##title##\"}\n~~~~",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	empty := string(templateHistoryMarkdown(service.TemplateHistory{ProjectID: "p2"}))
	if !strings.Contains(empty, "_No query templates yet._") || strings.Contains(empty, "## Latest") {
		t.Errorf("empty markdown = %s", empty)
	}
}

func TestHistoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	wb := mocks.NewMockWorkbench(ctrl)
	h := NewHistoryHandler(wb)
	wb.EXPECT().TemplateHistory(gomock.Any(), "p1").Return(sampleHistory(), nil).Times(2)

	t.Run("json", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"projectID": "p1"})
		w := httptest.NewRecorder()
		h.JSON(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("JSON() status = %v, want %v", w.Code, http.StatusOK)
		}
		if !strings.Contains(w.Body.String(), `"children":[{"item":{"id":"t2"`) {
			t.Errorf("JSON() body = %s", w.Body.String())
		}
	})

	t.Run("html", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"projectID": "p1"})
		w := httptest.NewRecorder()
		h.HTML(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("HTML() status = %v, want %v", w.Code, http.StatusOK)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("HTML() content type = %q", ct)
		}
		body := w.Body.String()
		if !strings.Contains(body, "<title>Query template history: p1</title>") {
			t.Error("HTML() should title the page with the project")
		}
		if !strings.Contains(body, "<code>t2</code>") || !strings.Contains(body, "<strong>(latest)</strong>") {
			t.Errorf("HTML() should render the version list:\n%s", body)
		}
		if strings.Contains(body, "<b>title</b>") {
			t.Error("HTML() must not pass raw HTML from descriptions through")
		}
	})
}

func TestHistoryHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	wb := mocks.NewMockWorkbench(ctrl)
	wb.EXPECT().TemplateHistory(gomock.Any(), "p1").Return(service.TemplateHistory{}, service.ErrNotFound)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"projectID": "p1"})
	w := httptest.NewRecorder()
	NewHistoryHandler(wb).HTML(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("HTML() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"relevance-workbench/internal/contextutil"
	"relevance-workbench/internal/service"
	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/versions"
)

// HistoryHandler serves the query template version forest of a project.
type HistoryHandler struct {
	workbench service.Workbench
	parser    goldmark.Markdown
	template  *template.Template
}

// historyPageData holds template data for the rendered history page.
type historyPageData struct {
	ProjectID string
	Content   template.HTML
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(workbench service.Workbench) *HistoryHandler {
	tmpl := template.Must(template.New("history").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Query template history: {{.ProjectID}}</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 960px;
      line-height: 1.6;
      background: #050b18;
      color: #e4ecff;
    }
    article {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 2rem;
    }
    h1, h2 {
      color: #c7d2fe;
    }
    ul {
      padding-left: 1.4rem;
      border-left: 1px dashed rgba(148, 163, 184, 0.3);
    }
    pre {
      background: #0f172a;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
      border: 1px solid rgba(99, 102, 241, 0.2);
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: rgba(99, 102, 241, 0.18);
      padding: 2px 5px;
      border-radius: 6px;
      color: #cbd5ff;
    }
    pre code {
      background: transparent;
      padding: 0;
    }
    @media (max-width: 640px) {
      body {
        padding: 1rem;
      }
    }
  </style>
</head>
<body>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &HistoryHandler{
		workbench: workbench,
		// Raw HTML stays disabled: descriptions are user text.
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// JSON handles GET /api/projects/{projectID}/query-templates/history.
func (h *HistoryHandler) JSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hist, err := h.workbench.TemplateHistory(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load query template history")
		return
	}
	writeJSON(w, ctx, http.StatusOK, hist)
}

// HTML handles GET /api/projects/{projectID}/query-templates/history.html.
func (h *HistoryHandler) HTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	projectID := chi.URLParam(r, "projectID")

	hist, err := h.workbench.TemplateHistory(ctx, projectID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load query template history")
		return
	}

	var buf bytes.Buffer
	if err := h.parser.Convert(templateHistoryMarkdown(hist), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "project_id", projectID, "error", err)
		http.Error(w, "failed to render history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, historyPageData{ProjectID: projectID, Content: template.HTML(buf.String())}); err != nil {
		logger.ErrorContext(ctx, "failed to execute history template", "project_id", projectID, "error", err)
		http.Error(w, "failed to render history", http.StatusInternalServerError)
		return
	}
}

// templateHistoryMarkdown lays the forest out as nested lists, followed by the
// text of the latest template.
func templateHistoryMarkdown(h service.TemplateHistory) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Query template history\n\n")
	fmt.Fprintf(&b, "Project `%s`: %d versions, %d generations deep.\n\n", h.ProjectID, h.Count, h.Depth)

	if len(h.Roots) == 0 {
		b.WriteString("_No query templates yet._\n")
		return []byte(b.String())
	}

	latestID := ""
	if h.Latest != nil {
		latestID = h.Latest.ID
	}
	writeTemplateNodes(&b, h.Roots, 0, latestID)

	if h.Latest != nil {
		fmt.Fprintf(&b, "\n## Latest: `%s`\n\n", h.Latest.ID)
		if len(h.Lineage) > 1 {
			fmt.Fprintf(&b, "Derived from `%s`.\n\n", strings.Join(h.Lineage[:len(h.Lineage)-1], "` > `"))
		}
		fmt.Fprintf(&b, "~~~~\n%s\n~~~~\n", h.Latest.Query)
	}
	return []byte(b.String())
}

func writeTemplateNodes(b *strings.Builder, nodes []*versions.Node[storage.QueryTemplate], depth int, latestID string) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Fprintf(b, "%s- `%s` %s", indent, n.Item.ID, n.Item.CreatedAt.UTC().Format(time.DateTime))
		if desc := strings.TrimSpace(n.Item.Description); desc != "" {
			fmt.Fprintf(b, ": %s", strings.Join(strings.Fields(desc), " "))
		}
		if n.Item.ID == latestID {
			b.WriteString(" **(latest)**")
		}
		b.WriteString("\n")
		writeTemplateNodes(b, n.Children, depth+1, latestID)
	}
}

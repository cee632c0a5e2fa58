package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"relevance-workbench/internal/alerts"
	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/knobs"
	"relevance-workbench/internal/lab"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/service"
	"relevance-workbench/internal/storage"
	storagemocks "relevance-workbench/internal/storage/mocks"
	"relevance-workbench/internal/tasks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRunner stands in for the orchestrator.
type fakeRunner struct {
	run  func(ctx context.Context, req runner.Request, sink runner.Sink) (*runner.Outcome, error)
	reqs []runner.Request
}

func (f *fakeRunner) Run(ctx context.Context, req runner.Request, sink runner.Sink) (*runner.Outcome, error) {
	f.reqs = append(f.reqs, req)
	if f.run == nil {
		return &runner.Outcome{}, nil
	}
	return f.run(ctx, req, sink)
}

type fixture struct {
	templates  *storagemocks.MockQueryTemplateStore
	rulesets   *storagemocks.MockRulesetStore
	versions   *storagemocks.MockRulesetVersionStore
	configs    *storagemocks.MockSearchConfigurationStore
	executions *storagemocks.MockExecutionStore
	runner     *fakeRunner
	tracker    *tasks.Tracker
	svc        service.Workbench
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		templates:  storagemocks.NewMockQueryTemplateStore(ctrl),
		rulesets:   storagemocks.NewMockRulesetStore(ctrl),
		versions:   storagemocks.NewMockRulesetVersionStore(ctrl),
		configs:    storagemocks.NewMockSearchConfigurationStore(ctrl),
		executions: storagemocks.NewMockExecutionStore(ctrl),
		runner:     &fakeRunner{},
		tracker:    tasks.NewTracker(),
	}
	f.svc = service.NewWorkbench(service.Deps{
		Templates:    f.templates,
		Rulesets:     f.rulesets,
		Versions:     f.versions,
		Configs:      f.configs,
		Executions:   f.executions,
		Sessions:     lab.NewRegistry(f.configs, 10),
		Runner:       f.runner,
		Tracker:      f.tracker,
		DefaultValue: knobs.DefaultValue,
	})
	return f
}

// openEmpty opens a session on a project with no configurations.
func (f *fixture) openEmpty(t *testing.T, kind string) lab.View {
	t.Helper()
	f.configs.EXPECT().Count(gomock.Any(), "p1").Return(0, nil)
	f.configs.EXPECT().Active(gomock.Any(), "p1").Return(nil, storage.ErrNotFound)
	view, err := f.svc.OpenSession(context.Background(), service.OpenSessionRequest{ProjectID: "p1", Backend: kind})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	return view
}

func isValidation(field string) func(error) bool {
	return func(err error) bool {
		var ve *service.ValidationError
		return errors.As(err, &ve) && ve.Field == field
	}
}

func TestWorkbench_EditQuery(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		req       service.EditQueryRequest
		wantValid bool
		wantKnobs knobs.Set
		checkErr  func(error) bool
	}{
		{
			name: "knobs reconciled against previous values",
			req: service.EditQueryRequest{
				Backend: "elasticsearch",
				Query:   `{"boost":"##b##","tie":"##a##"}`,
				Knobs:   map[string]any{"b": 2.5, "gone": 1},
			},
			wantValid: true,
			wantKnobs: knobs.Set{{Name: "a", Value: 10}, {Name: "b", Value: 2.5}},
		},
		{
			name: "invalid json still yields knobs",
			req: service.EditQueryRequest{
				Backend: "OPENSEARCH",
				Query:   `{"boost": ##b##,,`,
				Knobs:   map[string]any{"b": "abc"},
			},
			wantValid: false,
			wantKnobs: knobs.Set{{Name: "b", Value: 10}},
		},
		{
			name: "solr params always valid",
			req: service.EditQueryRequest{
				Backend: "SOLR",
				Query:   "q=#$query#&qf=title^##title_boost##",
			},
			wantValid: true,
			wantKnobs: knobs.Set{{Name: "title_boost", Value: 10}},
		},
		{
			name:     "unknown backend",
			req:      service.EditQueryRequest{Backend: "postgres", Query: "{}"},
			checkErr: isValidation("backend"),
		},
		{
			name:     "missing backend",
			req:      service.EditQueryRequest{Query: "{}"},
			checkErr: isValidation("backend"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.EditQuery(context.Background(), tt.req)
			if tt.checkErr != nil {
				if err == nil || !tt.checkErr(err) {
					t.Fatalf("EditQuery() error = %v, want validation error", err)
				}
				if !errors.Is(err, service.ErrInvalidInput) {
					t.Error("validation error should match ErrInvalidInput")
				}
				return
			}
			if err != nil {
				t.Fatalf("EditQuery() error = %v", err)
			}
			if resp.Valid != tt.wantValid {
				t.Errorf("EditQuery() Valid = %v, want %v", resp.Valid, tt.wantValid)
			}
			if fmt.Sprint(resp.Knobs) != fmt.Sprint(tt.wantKnobs) {
				t.Errorf("EditQuery() Knobs = %v, want %v", resp.Knobs, tt.wantKnobs)
			}
		})
	}
}

func TestWorkbench_SessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.OpenSession(ctx, service.OpenSessionRequest{Backend: "SOLR"}); !isValidation("projectId")(err) {
		t.Fatalf("OpenSession() error = %v, want projectId validation error", err)
	}

	view := f.openEmpty(t, "solr")
	if view.Backend != backend.Solr || view.ProjectID != "p1" || view.State != runner.StateIdle {
		t.Errorf("OpenSession() view = %+v", view)
	}
	if view.Selected != nil {
		t.Error("empty project should have no selection")
	}

	got, err := f.svc.Session(ctx, view.ID)
	if err != nil || got.ID != view.ID {
		t.Fatalf("Session() = %+v, %v", got, err)
	}
	if f.svc.Status(ctx).Sessions != 1 {
		t.Error("Status() should count the open session")
	}

	if err := f.svc.CloseSession(ctx, view.ID); err != nil {
		t.Fatalf("CloseSession() error = %v", err)
	}
	if _, err := f.svc.Session(ctx, view.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Session() after close error = %v, want ErrNotFound", err)
	}
	if err := f.svc.CloseSession(ctx, view.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("CloseSession() twice error = %v, want ErrNotFound", err)
	}
}

func TestWorkbench_OpenSessionLoaderFailure(t *testing.T) {
	f := newFixture(t)
	f.configs.EXPECT().Count(gomock.Any(), "p1").Return(0, errors.New("db closed"))

	_, err := f.svc.OpenSession(context.Background(), service.OpenSessionRequest{ProjectID: "p1", Backend: "SOLR"})
	if err == nil {
		t.Fatal("OpenSession() should fail when the window cannot load")
	}
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("OpenSession() error = %v, want an internal error", err)
	}
}

func TestWorkbench_LoadMore(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown direction", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "SOLR")
		if _, err := f.svc.LoadMore(ctx, view.ID, "up"); !isValidation("direction")(err) {
			t.Errorf("LoadMore() error = %v, want direction validation error", err)
		}
	})

	t.Run("boundaries reached", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "SOLR")
		for _, d := range []string{"left", "right", service.DirectionBoth} {
			got, err := f.svc.LoadMore(ctx, view.ID, d)
			if err != nil {
				t.Fatalf("LoadMore(%s) error = %v", d, err)
			}
			if !got.Window.AllLeftLoaded || !got.Window.AllRightLoaded {
				t.Errorf("LoadMore(%s) window = %+v", d, got.Window)
			}
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.svc.LoadMore(ctx, "missing", "left"); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("LoadMore() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("loader failure raises alert", func(t *testing.T) {
		f := newFixture(t)
		active := &storage.SearchConfiguration{ID: "c4", ProjectID: "p1", Index: 4, IsActive: true}
		f.configs.EXPECT().Count(gomock.Any(), "p1").Return(5, nil)
		f.configs.EXPECT().Active(gomock.Any(), "p1").Return(active, nil).Times(2)
		f.configs.EXPECT().ListAround(gomock.Any(), "p1", 4, 10).Return([]storage.SearchConfigurationSummary{
			{ID: "c3", Index: 3}, {ID: "c4", Index: 4, IsActive: true},
		}, nil)
		f.configs.EXPECT().ListWindow(gomock.Any(), "p1", "c3", storage.DirectionLeft, 10).Return(nil, errors.New("disk I/O error"))

		view, err := f.svc.OpenSession(ctx, service.OpenSessionRequest{ProjectID: "p1", Backend: "ELASTICSEARCH"})
		if err != nil {
			t.Fatalf("OpenSession() error = %v", err)
		}
		if view.Selected == nil || view.Selected.ID != "c4" {
			t.Errorf("OpenSession() selected = %+v, want c4", view.Selected)
		}

		if _, err := f.svc.LoadMore(ctx, view.ID, "left"); err == nil {
			t.Fatal("LoadMore() should fail")
		}
		got, _ := f.svc.Session(ctx, view.ID)
		if len(got.Alerts) != 1 || got.Alerts[0].Level != alerts.LevelError {
			t.Errorf("alerts = %+v, want one error alert", got.Alerts)
		}
		if len(got.Window.Items) != 2 || got.Window.LoadingLeft {
			t.Errorf("window = %+v, want unchanged and not loading", got.Window)
		}
	})
}

func TestWorkbench_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("request carries session scope", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "OPENSEARCH")

		resp, err := f.svc.Run(ctx, view.ID, service.RunRequest{
			BaseConfigurationID: "c1",
			Query:               `{"q":"#$query#"}`,
			Description:         "first",
			Knobs:               map[string]any{"boost": 2},
			Ruleset:             &service.RulesetEditRequest{RulesetID: "r1"},
			RulesetIDs:          []string{"r1"},
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if resp.Outcome == nil || resp.Session.ID != view.ID {
			t.Errorf("Run() response = %+v", resp)
		}
		if len(f.runner.reqs) != 1 {
			t.Fatalf("runner calls = %d, want 1", len(f.runner.reqs))
		}
		req := f.runner.reqs[0]
		if req.ProjectID != "p1" || req.Backend != backend.OpenSearch {
			t.Errorf("runner request scope = %s/%s", req.ProjectID, req.Backend)
		}
		if req.BaseConfigurationID != "c1" || req.Ruleset == nil || req.Ruleset.RulesetID != "r1" {
			t.Errorf("runner request = %+v", req)
		}
	})

	t.Run("validation stops before the runner", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "OPENSEARCH")

		_, err := f.svc.Run(ctx, view.ID, service.RunRequest{Query: "{}", RulesetIDs: []string{"r1", ""}})
		if !isValidation("rulesetIds[1]")(err) {
			t.Errorf("Run() error = %v, want rulesetIds[1] validation error", err)
		}
		if len(f.runner.reqs) != 0 {
			t.Error("runner should not be called for an invalid request")
		}
	})

	t.Run("empty solr template reaches the runner", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "SOLR")

		if _, err := f.svc.Run(ctx, view.ID, service.RunRequest{}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(f.runner.reqs) != 1 || f.runner.reqs[0].Query != "" {
			t.Errorf("runner requests = %+v, want one with an empty query", f.runner.reqs)
		}
	})

	errorTests := []struct {
		name     string
		runErr   error
		checkErr func(error) bool
	}{
		{name: "invalid query", runErr: runner.ErrInvalidQuery, checkErr: isValidation("query")},
		{
			name:     "execution failed",
			runErr:   fmt.Errorf("%w: ECONNREFUSED", runner.ErrExecutionFailed),
			checkErr: func(err error) bool { return errors.Is(err, service.ErrExternalService) },
		},
		{
			name:     "executor unreachable",
			runErr:   fmt.Errorf("failed to execute search configuration: %w: %w", runner.ErrExecutorUnavailable, errors.New("tls: handshake failure")),
			checkErr: func(err error) bool { return errors.Is(err, service.ErrExternalService) },
		},
		{
			name:     "baseline of another project",
			runErr:   fmt.Errorf("failed to load baseline: search configuration c9 is not in project p1: %w", storage.ErrNotFound),
			checkErr: func(err error) bool { return errors.Is(err, service.ErrNotFound) },
		},
		{
			name:     "baseline gone",
			runErr:   fmt.Errorf("failed to load baseline: %w", storage.ErrNotFound),
			checkErr: func(err error) bool { return errors.Is(err, service.ErrNotFound) },
		},
		{
			name:   "storage failure",
			runErr: errors.New("failed to create query template: disk full"),
			checkErr: func(err error) bool {
				return !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrExternalService) && !errors.Is(err, service.ErrConflict)
			},
		},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			view := f.openEmpty(t, "ELASTICSEARCH")
			f.runner.run = func(context.Context, runner.Request, runner.Sink) (*runner.Outcome, error) {
				return nil, tt.runErr
			}
			_, err := f.svc.Run(ctx, view.ID, service.RunRequest{Query: "{}"})
			if err == nil || !tt.checkErr(err) {
				t.Errorf("Run() error = %v", err)
			}
		})
	}

	t.Run("second run conflicts", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "ELASTICSEARCH")

		started := make(chan struct{})
		release := make(chan struct{})
		f.runner.run = func(context.Context, runner.Request, runner.Sink) (*runner.Outcome, error) {
			close(started)
			<-release
			return &runner.Outcome{}, nil
		}

		done := make(chan error, 1)
		go func() {
			_, err := f.svc.Run(ctx, view.ID, service.RunRequest{Query: "{}"})
			done <- err
		}()
		<-started

		if _, err := f.svc.Run(ctx, view.ID, service.RunRequest{Query: "{}"}); !errors.Is(err, service.ErrConflict) {
			t.Errorf("Run() while running error = %v, want ErrConflict", err)
		}
		close(release)
		if err := <-done; err != nil {
			t.Errorf("first Run() error = %v", err)
		}
	})

	t.Run("run outlives a cancelled request", func(t *testing.T) {
		f := newFixture(t)
		view := f.openEmpty(t, "ELASTICSEARCH")
		f.runner.run = func(ctx context.Context, _ runner.Request, _ runner.Sink) (*runner.Outcome, error) {
			return &runner.Outcome{}, ctx.Err()
		}

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := f.svc.Run(cctx, view.ID, service.RunRequest{Query: "{}"}); err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	})
}

func TestWorkbench_DismissAlert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view := f.openEmpty(t, "SOLR")

	f.runner.run = func(_ context.Context, _ runner.Request, sink runner.Sink) (*runner.Outcome, error) {
		sink.Alert(alerts.LevelWarning, "heads up")
		return &runner.Outcome{}, nil
	}
	resp, err := f.svc.Run(ctx, view.ID, service.RunRequest{Query: "q=x"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(resp.Session.Alerts) != 1 {
		t.Fatalf("alerts = %+v, want 1", resp.Session.Alerts)
	}
	id := resp.Session.Alerts[0].ID

	if err := f.svc.DismissAlert(ctx, view.ID, id); err != nil {
		t.Errorf("DismissAlert() error = %v", err)
	}
	if err := f.svc.DismissAlert(ctx, view.ID, id); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("DismissAlert() twice error = %v, want ErrNotFound", err)
	}
	if err := f.svc.DismissAlert(ctx, "missing", id); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("DismissAlert() unknown session error = %v, want ErrNotFound", err)
	}
}

func TestWorkbench_CreateRuleset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateRuleset(ctx, service.CreateRulesetRequest{ProjectID: "p1"}); !isValidation("name")(err) {
		t.Errorf("CreateRuleset() error = %v, want name validation error", err)
	}

	f.rulesets.EXPECT().Create(gomock.Any(), "p1", "boosts").Return(&storage.Ruleset{ID: "r1", ProjectID: "p1", Name: "boosts"}, nil)
	rs, err := f.svc.CreateRuleset(ctx, service.CreateRulesetRequest{ProjectID: "p1", Name: "boosts"})
	if err != nil || rs.ID != "r1" {
		t.Errorf("CreateRuleset() = %+v, %v", rs, err)
	}
}

func TestWorkbench_TemplateHistory(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1, t2 := "t1", "t2"
	list := []storage.QueryTemplate{
		{ID: "t1", ProjectID: "p1", CreatedAt: base},
		{ID: "t2", ProjectID: "p1", ParentID: &t1, CreatedAt: base.Add(time.Second)},
		{ID: "t3", ProjectID: "p1", ParentID: &t2, CreatedAt: base.Add(2 * time.Second)},
		{ID: "t4", ProjectID: "p1", ParentID: &t1, CreatedAt: base.Add(3 * time.Second)},
	}
	f.templates.EXPECT().ListByProject(gomock.Any(), "p1").Return(list, nil)

	h, err := f.svc.TemplateHistory(context.Background(), "p1")
	if err != nil {
		t.Fatalf("TemplateHistory() error = %v", err)
	}
	if len(h.Roots) != 1 || h.Roots[0].Item.ID != "t1" || len(h.Roots[0].Children) != 2 {
		t.Errorf("TemplateHistory() roots = %+v", h.Roots)
	}
	if h.Latest == nil || h.Latest.ID != "t4" {
		t.Errorf("TemplateHistory() latest = %+v, want t4", h.Latest)
	}
	if h.Count != 4 || h.Depth != 3 {
		t.Errorf("TemplateHistory() count/depth = %d/%d, want 4/3", h.Count, h.Depth)
	}
	if want := []string{"t1", "t4"}; !slices.Equal(h.Lineage, want) {
		t.Errorf("TemplateHistory() lineage = %v, want %v", h.Lineage, want)
	}
}

func TestWorkbench_TemplateHistoryEmpty(t *testing.T) {
	f := newFixture(t)
	f.templates.EXPECT().ListByProject(gomock.Any(), "p1").Return([]storage.QueryTemplate{}, nil)

	h, err := f.svc.TemplateHistory(context.Background(), "p1")
	if err != nil {
		t.Fatalf("TemplateHistory() error = %v", err)
	}
	if h.Latest != nil || h.Count != 0 || h.Roots == nil || h.Lineage == nil || len(h.Lineage) != 0 {
		t.Errorf("TemplateHistory() = %+v, want empty non-nil roots", h)
	}
}

func TestWorkbench_RulesetHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown ruleset", func(t *testing.T) {
		f := newFixture(t)
		f.rulesets.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
		if _, err := f.svc.RulesetHistory(ctx, "missing"); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("RulesetHistory() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("version chain", func(t *testing.T) {
		f := newFixture(t)
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		v1 := "v1"
		f.rulesets.EXPECT().GetByID(gomock.Any(), "r1").Return(&storage.Ruleset{ID: "r1"}, nil)
		f.versions.EXPECT().ListByRuleset(gomock.Any(), "r1").Return([]storage.RulesetVersion{
			{ID: "v1", RulesetID: "r1", CreatedAt: base},
			{ID: "v2", RulesetID: "r1", ParentID: &v1, CreatedAt: base.Add(time.Minute)},
		}, nil)

		h, err := f.svc.RulesetHistory(ctx, "r1")
		if err != nil {
			t.Fatalf("RulesetHistory() error = %v", err)
		}
		if h.Ruleset.ID != "r1" || h.Count != 2 || h.Latest == nil || h.Latest.ID != "v2" {
			t.Errorf("RulesetHistory() = %+v", h)
		}
		if len(h.Roots) != 1 || len(h.Roots[0].Children) != 1 {
			t.Errorf("RulesetHistory() roots = %+v", h.Roots)
		}
		if want := []string{"v1", "v2"}; !slices.Equal(h.Lineage, want) {
			t.Errorf("RulesetHistory() lineage = %v, want %v", h.Lineage, want)
		}
	})
}

func TestWorkbench_GetConfiguration(t *testing.T) {
	ctx := context.Background()
	cfg := &storage.SearchConfiguration{ID: "c1", ProjectID: "p1"}

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.configs.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
		if _, err := f.svc.GetConfiguration(ctx, "missing"); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("GetConfiguration() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("never executed", func(t *testing.T) {
		f := newFixture(t)
		f.configs.EXPECT().GetByID(gomock.Any(), "c1").Return(cfg, nil)
		f.executions.EXPECT().Latest(gomock.Any(), "c1").Return(nil, storage.ErrNotFound)

		d, err := f.svc.GetConfiguration(ctx, "c1")
		if err != nil {
			t.Fatalf("GetConfiguration() error = %v", err)
		}
		if d.LatestExecution != nil || d.Phrases == nil || len(d.Phrases) != 0 {
			t.Errorf("GetConfiguration() = %+v", d)
		}
	})

	t.Run("with execution", func(t *testing.T) {
		f := newFixture(t)
		f.configs.EXPECT().GetByID(gomock.Any(), "c1").Return(cfg, nil)
		f.executions.EXPECT().Latest(gomock.Any(), "c1").Return(&storage.Execution{ID: "e1", CombinedScore: 0.5}, nil)
		f.executions.EXPECT().ListPhrases(gomock.Any(), "e1").Return([]storage.SearchPhraseExecution{{Phrase: "shoes"}}, nil)

		d, err := f.svc.GetConfiguration(ctx, "c1")
		if err != nil {
			t.Fatalf("GetConfiguration() error = %v", err)
		}
		if d.LatestExecution.ID != "e1" || len(d.Phrases) != 1 {
			t.Errorf("GetConfiguration() = %+v", d)
		}
	})
}

func TestWorkbench_RecordExecution(t *testing.T) {
	ctx := context.Background()

	t.Run("phrase validation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RecordExecution(ctx, "c1", service.RecordExecutionRequest{
			Phrases: []service.PhraseResult{{Phrase: "ok"}, {Phrase: ""}},
		})
		if !isValidation("phrases[1].phrase")(err) {
			t.Errorf("RecordExecution() error = %v, want phrases[1].phrase validation error", err)
		}
	})

	t.Run("unknown configuration", func(t *testing.T) {
		f := newFixture(t)
		f.configs.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
		if _, err := f.svc.RecordExecution(ctx, "missing", service.RecordExecutionRequest{}); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("RecordExecution() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("stores execution and phrases", func(t *testing.T) {
		f := newFixture(t)
		f.configs.EXPECT().GetByID(gomock.Any(), "c1").Return(&storage.SearchConfiguration{ID: "c1"}, nil)
		f.executions.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, exec *storage.Execution, phrases []storage.SearchPhraseExecution) error {
				if exec.SearchConfigurationID != "c1" || exec.CombinedScore != 0.75 || exec.Meta.TookP95 != 30 {
					t.Errorf("Create() execution = %+v", exec)
				}
				if len(phrases) != 2 || phrases[1].Error != "timeout" || phrases[0].TotalResults != 42 {
					t.Errorf("Create() phrases = %+v", phrases)
				}
				exec.ID = "e1"
				return nil
			})

		exec, err := f.svc.RecordExecution(ctx, "c1", service.RecordExecutionRequest{
			CombinedScore: 0.75,
			AllScores:     map[string]float64{"ndcg": 0.75},
			Meta:          storage.ExecutionMeta{TookP50: 10, TookP95: 30, TookP99: 60},
			Phrases: []service.PhraseResult{
				{Phrase: "shoes", CombinedScore: 0.9, TotalResults: 42, TookMs: 8},
				{Phrase: "hats", Error: "timeout"},
			},
		})
		if err != nil || exec.ID != "e1" {
			t.Errorf("RecordExecution() = %+v, %v", exec, err)
		}
	})
}

func TestWorkbench_Status(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st := f.svc.Status(ctx)
	if st.ExecutionRunning || st.Tasks == nil || len(st.Tasks) != 0 {
		t.Errorf("Status() = %+v, want idle", st)
	}

	f.tracker.Observe(tasks.Snapshot{Tasks: []string{"Index Rebuild", tasks.ExecutionTaskName + " (p1)"}})
	st = f.svc.Status(ctx)
	if !st.ExecutionRunning || len(st.Tasks) != 2 {
		t.Errorf("Status() = %+v, want an execution running", st)
	}
}

// Package runner persists whatever changed in an edited search configuration
// as new immutable versions, then executes and refreshes the result.
package runner

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_executor.go -package=mocks relevance-workbench/internal/runner Executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"relevance-workbench/internal/alerts"
	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/diff"
	"relevance-workbench/internal/executor"
	"relevance-workbench/internal/knobs"
	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/tasks"
)

// State is a step of a run attempt.
type State string

const (
	StateIdle                         State = "idle"
	StateValidating                   State = "validating"
	StatePersistingTemplate           State = "persisting_template"
	StatePersistingRuleset            State = "persisting_ruleset"
	StatePersistingUnversionedRuleset State = "persisting_unversioned_rulesets"
	StatePersistingConfiguration      State = "persisting_configuration"
	StateExecuting                    State = "executing"
	StateRefreshing                   State = "refreshing"
)

var (
	// ErrInvalidQuery is returned when the query fails the backend's syntax gate.
	// Nothing is read or written in that case.
	ErrInvalidQuery = errors.New("query is not valid for the selected backend")
	// ErrRunInProgress is returned when a session already has a run in flight.
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrExecutionFailed wraps a typed failure reported by the execution service.
	ErrExecutionFailed = errors.New("execution failed")
	// ErrExecutorUnavailable wraps a failure to reach the execution service that
	// carries no typed code.
	ErrExecutorUnavailable = errors.New("execution service unavailable")
)

// Executor triggers an execution of a search configuration.
type Executor interface {
	Execute(ctx context.Context, id string) (executor.Result, error)
}

// Sink receives the observable effects of a run.
type Sink interface {
	SetState(State)
	// Splice places a refreshed summary into the configuration window.
	Splice(storage.SearchConfigurationSummary)
	// Select marks cfg as the current selection.
	Select(cfg *storage.SearchConfiguration)
	Alert(level alerts.Level, message string)
}

// RulesetEdit is the edited payload of the selected ruleset.
type RulesetEdit struct {
	RulesetID string
	Value     storage.RulesetValue
}

// Request is one run attempt.
type Request struct {
	ProjectID string
	Backend   backend.Kind
	// BaseConfigurationID is the configuration the form was loaded from. Empty
	// means there is no baseline and every part is persisted.
	BaseConfigurationID string
	Query               string
	Description         string
	// Knobs holds raw form values; anything non-numeric falls back to the default.
	Knobs      map[string]any
	Ruleset    *RulesetEdit
	RulesetIDs []string
}

// Outcome reports what a run persisted and how execution went.
type Outcome struct {
	Changes         diff.Changes                 `json:"changes"`
	QueryTemplate   *storage.QueryTemplate       `json:"queryTemplate,omitempty"`
	RulesetVersions []storage.RulesetVersion     `json:"rulesetVersions"`
	Configuration   *storage.SearchConfiguration `json:"configuration,omitempty"`
	Result          executor.Result              `json:"result"`
}

// Orchestrator runs the persist, execute and refresh sequence.
type Orchestrator struct {
	templates    storage.QueryTemplateStore
	rulesets     storage.RulesetStore
	versions     storage.RulesetVersionStore
	configs      storage.SearchConfigurationStore
	executor     Executor
	board        *tasks.Board
	defaultValue float64
	logger       *slog.Logger
}

// NewOrchestrator creates an Orchestrator. board may be nil.
func NewOrchestrator(
	templates storage.QueryTemplateStore,
	rulesets storage.RulesetStore,
	versions storage.RulesetVersionStore,
	configs storage.SearchConfigurationStore,
	exec Executor,
	board *tasks.Board,
	defaultValue float64,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		templates:    templates,
		rulesets:     rulesets,
		versions:     versions,
		configs:      configs,
		executor:     exec,
		board:        board,
		defaultValue: defaultValue,
		logger:       logger,
	}
}

type baseline struct {
	config   *storage.SearchConfiguration
	template *storage.QueryTemplate
	ruleset  *storage.RulesetVersion
}

// Run executes one attempt. Steps run strictly in order since later steps use
// ids produced by earlier ones. A failing step raises an alert and stops the
// run; versions already written stay in place.
func (o *Orchestrator) Run(ctx context.Context, req Request, sink Sink) (*Outcome, error) {
	codec, err := backend.For(req.Backend)
	if err != nil || !codec.Valid(req.Query) {
		return nil, ErrInvalidQuery
	}

	defer sink.SetState(StateIdle)
	sink.SetState(StateValidating)

	fail := func(step string, err error) (*Outcome, error) {
		o.logger.ErrorContext(ctx, "run failed", "step", step, "project_id", req.ProjectID, "error", err)
		sink.Alert(alerts.LevelError, fmt.Sprintf("Failed to %s: %v", step, err))
		return nil, fmt.Errorf("failed to %s: %w", step, err)
	}

	base, err := o.loadBaseline(ctx, req)
	if err != nil {
		return fail("load baseline", err)
	}

	knobValues := knobs.Reconcile(knobs.Coerce(req.Knobs, o.defaultValue), codec.ExtractKnobVars(req.Query), o.defaultValue).Map()

	candidate := diff.Form{Query: req.Query, RulesetIDs: req.RulesetIDs, Knobs: knobValues}
	previous := diff.Form{}
	if req.Ruleset != nil {
		candidate.Ruleset = &req.Ruleset.Value
	}
	if base.config != nil {
		previous.Query = base.template.Query
		previous.RulesetIDs = base.config.RulesetIDs
		previous.Knobs = base.config.Knobs
	}
	// A selected ruleset with no version yet compares against nil, so even an
	// empty payload starts its chain.
	if base.ruleset != nil {
		previous.Ruleset = &base.ruleset.Value
	}
	changes := diff.Compare(codec, candidate, previous)
	if base.config == nil {
		changes.QueryTemplate = true
	}

	out := &Outcome{Changes: changes, RulesetVersions: []storage.RulesetVersion{}}

	out.QueryTemplate = base.template
	if changes.QueryTemplate {
		sink.SetState(StatePersistingTemplate)
		var parentID *string
		if base.template != nil {
			parentID = &base.template.ID
		}
		t, err := o.templates.Create(ctx, parentID, req.Description, req.ProjectID, req.Query)
		if err != nil {
			return fail("create query template", err)
		}
		out.QueryTemplate = t
	}

	if changes.Ruleset && req.Ruleset != nil {
		sink.SetState(StatePersistingRuleset)
		var parentID *string
		if base.ruleset != nil {
			parentID = &base.ruleset.ID
		}
		v, err := o.versions.Create(ctx, req.Ruleset.RulesetID, parentID, req.Ruleset.Value)
		if err != nil {
			return fail("create ruleset version", err)
		}
		out.RulesetVersions = append(out.RulesetVersions, *v)
	}

	created, err := o.versionUnversioned(ctx, req, base, changes, sink)
	out.RulesetVersions = append(out.RulesetVersions, created...)
	if err != nil {
		return fail("create initial ruleset version", err)
	}

	cfg := base.config
	if changes.Any() {
		sink.SetState(StatePersistingConfiguration)
		cfg, err = o.configs.Create(ctx, req.ProjectID, out.QueryTemplate.ID, req.RulesetIDs, knobValues)
		if err != nil {
			return fail("create search configuration", err)
		}
	}
	out.Configuration = cfg

	sink.SetState(StateExecuting)
	result, err := o.execute(ctx, cfg.ID)
	out.Result = result
	if err != nil {
		return fail("execute search configuration", fmt.Errorf("%w: %w", ErrExecutorUnavailable, err))
	}
	if !result.OK() {
		o.logger.WarnContext(ctx, "execution rejected", "configuration_id", cfg.ID, "code", result.Error, "message", result.Message)
		sink.Alert(alerts.LevelError, result.Guidance())
		return out, fmt.Errorf("%w: %s", ErrExecutionFailed, result.Error)
	}

	sink.SetState(StateRefreshing)
	fresh, err := o.configs.Load(ctx, cfg.ID, cfg.Index)
	if err != nil {
		return fail("reload search configuration", err)
	}
	summary, err := o.configs.Summarize(ctx, cfg.ID)
	if err != nil {
		return fail("reload search configuration", err)
	}
	sink.Splice(*summary)
	sink.Select(fresh)
	out.Configuration = fresh

	o.logger.InfoContext(ctx, "run completed",
		"project_id", req.ProjectID,
		"configuration_id", fresh.ID,
		"index", fresh.Index,
		"template_changed", changes.QueryTemplate,
		"ruleset_changed", changes.Ruleset,
		"ruleset_ids_changed", changes.RulesetIDs,
		"knobs_changed", changes.Knobs,
	)
	return out, nil
}

// notInProject reports a row of another project as missing, so ids from one
// project never resolve in another.
func notInProject(kind, id, projectID string) error {
	return fmt.Errorf("%s %s is not in project %s: %w", kind, id, projectID, storage.ErrNotFound)
}

// loadBaseline reads the configuration the form was loaded from and the pinned
// version of the edited ruleset. Every referenced row must belong to the
// request's project.
func (o *Orchestrator) loadBaseline(ctx context.Context, req Request) (baseline, error) {
	var base baseline
	if req.BaseConfigurationID != "" {
		cfg, err := o.configs.GetByID(ctx, req.BaseConfigurationID)
		if err != nil {
			return base, err
		}
		if cfg.ProjectID != req.ProjectID {
			return base, notInProject("search configuration", cfg.ID, req.ProjectID)
		}
		t, err := o.templates.GetByID(ctx, cfg.QueryTemplateID)
		if err != nil {
			return base, err
		}
		if t.ProjectID != req.ProjectID {
			return base, notInProject("query template", t.ID, req.ProjectID)
		}
		base.config, base.template = cfg, t
	}

	if err := o.checkRulesets(ctx, req); err != nil {
		return base, err
	}

	if req.Ruleset == nil {
		return base, nil
	}
	var (
		v   *storage.RulesetVersion
		err error
	)
	if base.config != nil {
		v, err = o.versions.LatestForConfiguration(ctx, req.Ruleset.RulesetID, base.config.ID)
	} else {
		v, err = o.versions.Latest(ctx, req.Ruleset.RulesetID)
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return base, err
	default:
		base.ruleset = v
	}
	return base, nil
}

// checkRulesets verifies that the edited ruleset and every attached ruleset
// belong to the request's project.
func (o *Orchestrator) checkRulesets(ctx context.Context, req Request) error {
	ids := slices.Clone(req.RulesetIDs)
	if req.Ruleset != nil {
		ids = append(ids, req.Ruleset.RulesetID)
	}
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		rs, err := o.rulesets.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("ruleset %s: %w", id, err)
		}
		if rs.ProjectID != req.ProjectID {
			return notInProject("ruleset", id, req.ProjectID)
		}
	}
	return nil
}

// versionUnversioned gives every newly attached ruleset without any version an
// empty initial one, so each attached ruleset resolves to a version.
func (o *Orchestrator) versionUnversioned(ctx context.Context, req Request, base baseline, changes diff.Changes, sink Sink) ([]storage.RulesetVersion, error) {
	var before []string
	if base.config != nil {
		before = base.config.RulesetIDs
	}

	created := []storage.RulesetVersion{}
	seen := map[string]bool{}
	for _, id := range req.RulesetIDs {
		if seen[id] || slices.Contains(before, id) {
			continue
		}
		seen[id] = true
		if changes.Ruleset && req.Ruleset != nil && req.Ruleset.RulesetID == id {
			continue
		}

		_, err := o.versions.Latest(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return created, err
		}

		if len(created) == 0 {
			sink.SetState(StatePersistingUnversionedRuleset)
		}
		v, err := o.versions.Create(ctx, id, nil, storage.RulesetValue{})
		if err != nil {
			return created, err
		}
		created = append(created, *v)
	}
	return created, nil
}

func (o *Orchestrator) execute(ctx context.Context, id string) (executor.Result, error) {
	if o.board != nil {
		done := o.board.Start(ctx, tasks.ExecutionTaskName)
		defer done()
	}
	return o.executor.Execute(ctx, id)
}

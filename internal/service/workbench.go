package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_workbench.go -package=mocks -mock_names=Workbench=MockWorkbench relevance-workbench/internal/service Workbench

import (
	"context"
	"errors"
	"fmt"

	"relevance-workbench/internal/alerts"
	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/contextutil"
	"relevance-workbench/internal/knobs"
	"relevance-workbench/internal/lab"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/tasks"
	"relevance-workbench/internal/versions"
	"relevance-workbench/internal/window"
)

// DirectionBoth loads the window in both directions at once.
const DirectionBoth = "both"

// EditQueryRequest is a keystroke-level edit of a query template.
type EditQueryRequest struct {
	Backend string         `json:"backend" validate:"required,backend"`
	Query   string         `json:"query"`
	Knobs   map[string]any `json:"knobs"`
}

// EditQueryResponse carries the reconciled knob set for the edited text.
type EditQueryResponse struct {
	Valid bool      `json:"valid"`
	Knobs knobs.Set `json:"knobs"`
}

// OpenSessionRequest opens a workbench session on a project.
type OpenSessionRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Backend   string `json:"backend" validate:"required,backend"`
}

// RulesetEditRequest is the edited payload of the selected ruleset.
type RulesetEditRequest struct {
	RulesetID string               `json:"rulesetId" validate:"required"`
	Value     storage.RulesetValue `json:"value"`
}

// RunRequest is the edited form submitted for a run.
type RunRequest struct {
	BaseConfigurationID string              `json:"baseConfigurationId"`
	Query               string              `json:"query"`
	Description         string              `json:"description" validate:"max=1024"`
	Knobs               map[string]any      `json:"knobs"`
	Ruleset             *RulesetEditRequest `json:"ruleset"`
	RulesetIDs          []string            `json:"rulesetIds" validate:"dive,required"`
}

// RunResponse reports a run and the session state after it.
type RunResponse struct {
	Outcome *runner.Outcome `json:"outcome"`
	Session lab.View        `json:"session"`
}

// CreateRulesetRequest creates an empty ruleset container.
type CreateRulesetRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Name      string `json:"name" validate:"required,max=255"`
}

// PhraseResult is one judged phrase of a recorded execution.
type PhraseResult struct {
	Phrase        string             `json:"phrase" validate:"required"`
	CombinedScore float64            `json:"combinedScore"`
	AllScores     map[string]float64 `json:"allScores"`
	TotalResults  int                `json:"totalResults" validate:"gte=0"`
	TookMs        int                `json:"tookMs" validate:"gte=0"`
	Error         string             `json:"error"`
}

// RecordExecutionRequest is posted back by the execution service.
type RecordExecutionRequest struct {
	CombinedScore float64               `json:"combinedScore"`
	AllScores     map[string]float64    `json:"allScores"`
	Meta          storage.ExecutionMeta `json:"meta"`
	Phrases       []PhraseResult        `json:"phrases" validate:"dive"`
}

// ConfigurationDetail is a configuration with its latest execution, if any.
type ConfigurationDetail struct {
	Configuration   *storage.SearchConfiguration    `json:"configuration"`
	LatestExecution *storage.Execution              `json:"latestExecution"`
	Phrases         []storage.SearchPhraseExecution `json:"phrases"`
}

// TemplateHistory is the version forest of a project's query templates.
// Lineage lists the ids from the root of the latest template's chain down to
// the latest template itself.
type TemplateHistory struct {
	ProjectID string                                  `json:"projectId"`
	Roots     []*versions.Node[storage.QueryTemplate] `json:"roots"`
	Latest    *storage.QueryTemplate                  `json:"latest"`
	Lineage   []string                                `json:"lineage"`
	Count     int                                     `json:"count"`
	Depth     int                                     `json:"depth"`
}

// RulesetHistory is the version forest of one ruleset.
type RulesetHistory struct {
	Ruleset *storage.Ruleset                         `json:"ruleset"`
	Roots   []*versions.Node[storage.RulesetVersion] `json:"roots"`
	Latest  *storage.RulesetVersion                  `json:"latest"`
	Lineage []string                                 `json:"lineage"`
	Count   int                                      `json:"count"`
}

// StatusResponse reports background task activity.
type StatusResponse struct {
	Tasks            []string `json:"tasks"`
	ExecutionRunning bool     `json:"executionRunning"`
	Sessions         int      `json:"sessions"`
}

// Workbench provides the relevance workbench operations.
type Workbench interface {
	// EditQuery extracts and reconciles knobs for edited template text.
	EditQuery(ctx context.Context, req EditQueryRequest) (EditQueryResponse, error)
	// OpenSession starts a session with its initial configuration window.
	OpenSession(ctx context.Context, req OpenSessionRequest) (lab.View, error)
	// Session returns the current state of a session.
	Session(ctx context.Context, sessionID string) (lab.View, error)
	// CloseSession drops a session.
	CloseSession(ctx context.Context, sessionID string) error
	// LoadMore extends a session's window left, right or both.
	LoadMore(ctx context.Context, sessionID, direction string) (lab.View, error)
	// Run persists what changed, executes and refreshes.
	Run(ctx context.Context, sessionID string, req RunRequest) (RunResponse, error)
	// DismissAlert removes an alert from a session.
	DismissAlert(ctx context.Context, sessionID, alertID string) error
	// CreateRuleset creates an empty ruleset container.
	CreateRuleset(ctx context.Context, req CreateRulesetRequest) (*storage.Ruleset, error)
	// TemplateHistory returns the template version forest of a project.
	TemplateHistory(ctx context.Context, projectID string) (TemplateHistory, error)
	// RulesetHistory returns the version forest of a ruleset.
	RulesetHistory(ctx context.Context, rulesetID string) (RulesetHistory, error)
	// GetConfiguration returns a configuration and its latest execution.
	GetConfiguration(ctx context.Context, id string) (ConfigurationDetail, error)
	// RecordExecution stores results reported by the execution service.
	RecordExecution(ctx context.Context, configurationID string, req RecordExecutionRequest) (*storage.Execution, error)
	// Status reports background task activity.
	Status(ctx context.Context) StatusResponse
}

// Deps holds dependencies for the workbench service.
type Deps struct {
	Templates    storage.QueryTemplateStore
	Rulesets     storage.RulesetStore
	Versions     storage.RulesetVersionStore
	Configs      storage.SearchConfigurationStore
	Executions   storage.ExecutionStore
	Sessions     *lab.Registry
	Runner       lab.Runner
	Tracker      *tasks.Tracker
	DefaultValue float64
}

// workbench implements Workbench.
type workbench struct {
	Deps
}

// NewWorkbench creates a new Workbench.
func NewWorkbench(deps Deps) Workbench {
	if deps.Tracker == nil {
		deps.Tracker = tasks.NewTracker()
	}
	return &workbench{Deps: deps}
}

func (s *workbench) EditQuery(ctx context.Context, req EditQueryRequest) (EditQueryResponse, error) {
	if err := validateRequest(req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid edit request", "error", err)
		return EditQueryResponse{}, err
	}
	kind, _ := backend.ParseKind(req.Backend)
	codec := backend.MustFor(kind)

	set := knobs.Reconcile(knobs.Coerce(req.Knobs, s.DefaultValue), codec.ExtractKnobVars(req.Query), s.DefaultValue)
	return EditQueryResponse{Valid: codec.Valid(req.Query), Knobs: set}, nil
}

func (s *workbench) OpenSession(ctx context.Context, req OpenSessionRequest) (lab.View, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid session request", "error", err)
		return lab.View{}, err
	}
	kind, _ := backend.ParseKind(req.Backend)

	session, err := s.Sessions.Open(ctx, req.ProjectID, kind)
	if err != nil {
		logger.ErrorContext(ctx, "failed to open session", "project_id", req.ProjectID, "error", err)
		return lab.View{}, WrapError(err, "failed to open session")
	}
	logger.InfoContext(ctx, "session opened", "session_id", session.ID, "project_id", req.ProjectID, "backend", kind)
	return session.View(), nil
}

func (s *workbench) Session(ctx context.Context, sessionID string) (lab.View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return lab.View{}, err
	}
	return session.View(), nil
}

func (s *workbench) CloseSession(ctx context.Context, sessionID string) error {
	if err := s.Sessions.Close(sessionID); err != nil {
		return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "session closed", "session_id", sessionID)
	return nil
}

func (s *workbench) LoadMore(ctx context.Context, sessionID, direction string) (lab.View, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return lab.View{}, err
	}

	if direction == DirectionBoth {
		err = session.Window.LoadBoth(ctx)
	} else {
		d, perr := window.ParseDirection(direction)
		if perr != nil {
			return lab.View{}, &ValidationError{Field: "direction", Message: "must be left, right or both"}
		}
		_, err = session.Window.LoadMore(ctx, d)
	}

	switch {
	case err == nil:
		return session.View(), nil
	case errors.Is(err, window.ErrLoadInProgress):
		return lab.View{}, fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load configurations", "session_id", sessionID, "direction", direction, "error", err)
		session.Alert(alerts.LevelError, fmt.Sprintf("Failed to load configurations: %v", err))
		return lab.View{}, WrapError(err, "failed to load configurations")
	}
}

func (s *workbench) Run(ctx context.Context, sessionID string, req RunRequest) (RunResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid run request", "error", err)
		return RunResponse{}, err
	}
	session, err := s.session(sessionID)
	if err != nil {
		return RunResponse{}, err
	}

	rr := runner.Request{
		BaseConfigurationID: req.BaseConfigurationID,
		Query:               req.Query,
		Description:         req.Description,
		Knobs:               req.Knobs,
		RulesetIDs:          req.RulesetIDs,
	}
	if req.Ruleset != nil {
		rr.Ruleset = &runner.RulesetEdit{RulesetID: req.Ruleset.RulesetID, Value: req.Ruleset.Value}
	}

	// A run outlives a client that navigates away.
	out, err := session.Run(context.WithoutCancel(ctx), s.Runner, rr)
	return RunResponse{Outcome: out, Session: session.View()}, runError(err, session.Backend)
}

func (s *workbench) DismissAlert(ctx context.Context, sessionID, alertID string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if !session.Alerts.Dismiss(alertID) {
		return fmt.Errorf("%w: alert %s", ErrNotFound, alertID)
	}
	return nil
}

func (s *workbench) CreateRuleset(ctx context.Context, req CreateRulesetRequest) (*storage.Ruleset, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid ruleset request", "error", err)
		return nil, err
	}
	rs, err := s.Rulesets.Create(ctx, req.ProjectID, req.Name)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create ruleset", "project_id", req.ProjectID, "error", err)
		return nil, WrapError(err, "failed to create ruleset")
	}
	logger.InfoContext(ctx, "ruleset created", "ruleset_id", rs.ID, "project_id", rs.ProjectID)
	return rs, nil
}

func (s *workbench) TemplateHistory(ctx context.Context, projectID string) (TemplateHistory, error) {
	list, err := s.Templates.ListByProject(ctx, projectID)
	if err != nil {
		return TemplateHistory{}, WrapError(err, "failed to list query templates")
	}

	h := TemplateHistory{ProjectID: projectID, Roots: versions.BuildForest(list), Count: len(list)}
	h.Depth = versions.Depth(h.Roots)
	h.Lineage = []string{}
	if latest, ok := versions.Latest(list); ok {
		h.Latest = &latest
		h.Lineage = lineage(list, latest.ID)
	}
	return h, nil
}

func (s *workbench) RulesetHistory(ctx context.Context, rulesetID string) (RulesetHistory, error) {
	rs, err := s.Rulesets.GetByID(ctx, rulesetID)
	if err != nil {
		return RulesetHistory{}, notFoundOr(err, "ruleset "+rulesetID, "failed to get ruleset")
	}
	list, err := s.Versions.ListByRuleset(ctx, rulesetID)
	if err != nil {
		return RulesetHistory{}, WrapError(err, "failed to list ruleset versions")
	}

	h := RulesetHistory{Ruleset: rs, Roots: versions.BuildForest(list), Lineage: []string{}, Count: len(list)}
	if latest, ok := versions.Latest(list); ok {
		h.Latest = &latest
		h.Lineage = lineage(list, latest.ID)
	}
	return h, nil
}

// lineage returns the ids on the path from a root to id.
func lineage[T versions.Versioned](items []T, id string) []string {
	path := versions.Ancestry(items, id)
	ids := make([]string, len(path))
	for i, item := range path {
		ids[i] = item.VersionID()
	}
	return ids
}

func (s *workbench) GetConfiguration(ctx context.Context, id string) (ConfigurationDetail, error) {
	cfg, err := s.Configs.GetByID(ctx, id)
	if err != nil {
		return ConfigurationDetail{}, notFoundOr(err, "search configuration "+id, "failed to get search configuration")
	}

	detail := ConfigurationDetail{Configuration: cfg, Phrases: []storage.SearchPhraseExecution{}}
	exec, err := s.Executions.Latest(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return detail, nil
	case err != nil:
		return ConfigurationDetail{}, WrapError(err, "failed to get latest execution")
	}
	detail.LatestExecution = exec

	phrases, err := s.Executions.ListPhrases(ctx, exec.ID)
	if err != nil {
		return ConfigurationDetail{}, WrapError(err, "failed to list phrase executions")
	}
	detail.Phrases = phrases
	return detail, nil
}

func (s *workbench) RecordExecution(ctx context.Context, configurationID string, req RecordExecutionRequest) (*storage.Execution, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid execution record", "error", err)
		return nil, err
	}
	if _, err := s.Configs.GetByID(ctx, configurationID); err != nil {
		return nil, notFoundOr(err, "search configuration "+configurationID, "failed to get search configuration")
	}

	exec := &storage.Execution{
		SearchConfigurationID: configurationID,
		CombinedScore:         req.CombinedScore,
		AllScores:             req.AllScores,
		Meta:                  req.Meta,
	}
	phrases := make([]storage.SearchPhraseExecution, len(req.Phrases))
	for i, p := range req.Phrases {
		phrases[i] = storage.SearchPhraseExecution{
			Phrase:        p.Phrase,
			CombinedScore: p.CombinedScore,
			AllScores:     p.AllScores,
			TotalResults:  p.TotalResults,
			TookMs:        p.TookMs,
			Error:         p.Error,
		}
	}
	if err := s.Executions.Create(ctx, exec, phrases); err != nil {
		logger.ErrorContext(ctx, "failed to record execution", "configuration_id", configurationID, "error", err)
		return nil, WrapError(err, "failed to record execution")
	}
	logger.InfoContext(ctx, "execution recorded",
		"configuration_id", configurationID,
		"execution_id", exec.ID,
		"combined_score", exec.CombinedScore,
		"phrases", len(phrases),
	)
	return exec, nil
}

func (s *workbench) Status(ctx context.Context) StatusResponse {
	snapshot := s.Tracker.Snapshot()
	return StatusResponse{
		Tasks:            snapshot.Tasks,
		ExecutionRunning: s.Tracker.ExecutionRunning(),
		Sessions:         s.Sessions.Len(),
	}
}

func (s *workbench) session(id string) (*lab.Session, error) {
	session, err := s.Sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	return session, nil
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_configuration_store.go -package=mocks relevance-workbench/internal/storage SearchConfigurationStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ErrIndexMismatch is returned by Load when the stored sequence position differs
// from the one the caller holds.
var ErrIndexMismatch = errors.New("search configuration index mismatch")

// SearchConfigurationStore defines the interface for search configuration storage.
type SearchConfigurationStore interface {
	// Create inserts a configuration at the next index of the project and makes it active.
	Create(ctx context.Context, projectID, queryTemplateID string, rulesetIDs []string, knobs map[string]float64) (*SearchConfiguration, error)
	// GetByID gets a configuration by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*SearchConfiguration, error)
	// Load re-fetches a configuration whose sequence position is already known.
	Load(ctx context.Context, id string, index int) (*SearchConfiguration, error)
	// Summarize returns the window row for a configuration.
	Summarize(ctx context.Context, id string) (*SearchConfigurationSummary, error)
	// Active returns the active configuration of a project. Returns ErrNotFound if none.
	Active(ctx context.Context, projectID string) (*SearchConfiguration, error)
	// Count returns the length of the project's configuration sequence.
	Count(ctx context.Context, projectID string) (int, error)
	// ListAround returns up to width summaries ending at center where possible.
	ListAround(ctx context.Context, projectID string, center, width int) ([]SearchConfigurationSummary, error)
	// ListWindow returns up to limit summaries strictly beyond refID in direction,
	// in ascending index order.
	ListWindow(ctx context.Context, projectID, refID string, direction Direction, limit int) ([]SearchConfigurationSummary, error)
}

// SearchConfigurationRepo provides methods for search configuration operations.
// It implements SearchConfigurationStore.
type SearchConfigurationRepo struct {
	db *sql.DB
}

// NewSearchConfigurationRepo creates a new SearchConfigurationRepo.
func NewSearchConfigurationRepo(db *sql.DB) *SearchConfigurationRepo {
	return &SearchConfigurationRepo{db: db}
}

// Create picks MAX(idx)+1 inside a transaction. Concurrent writers on the same
// project are not coordinated; the UNIQUE (project_id, idx) constraint rejects
// the loser instead of letting two rows share an index.
func (r *SearchConfigurationRepo) Create(ctx context.Context, projectID, queryTemplateID string, rulesetIDs []string, knobs map[string]float64) (*SearchConfiguration, error) {
	if knobs == nil {
		knobs = map[string]float64{}
	}
	knobsJSON, err := json.Marshal(knobs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode knobs: %w", err)
	}

	ids := dedupe(rulesetIDs)
	cfg := &SearchConfiguration{
		ID:                uuid.New().String(),
		ProjectID:         projectID,
		QueryTemplateID:   queryTemplateID,
		Knobs:             knobs,
		RulesetIDs:        ids,
		RulesetVersionIDs: make(map[string]string, len(ids)),
		IsActive:          true,
		CreatedAt:         now(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(idx), -1) + 1 FROM search_configurations WHERE project_id = ?",
		projectID,
	).Scan(&cfg.Index); err != nil {
		return nil, fmt.Errorf("failed to compute next index: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE search_configurations SET is_active = 0 WHERE project_id = ? AND is_active = 1",
		projectID,
	); err != nil {
		return nil, fmt.Errorf("failed to deactivate configurations: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO search_configurations (id, project_id, query_template_id, knobs, idx, is_active, created_at) VALUES (?, ?, ?, ?, ?, 1, ?)",
		cfg.ID, cfg.ProjectID, cfg.QueryTemplateID, string(knobsJSON), cfg.Index, toNanos(cfg.CreatedAt),
	); err != nil {
		return nil, fmt.Errorf("failed to insert search configuration: %w", err)
	}

	for pos, rulesetID := range ids {
		var versionID sql.NullString
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM ruleset_versions WHERE ruleset_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1",
			rulesetID,
		).Scan(&versionID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to resolve ruleset version: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO search_configuration_rulesets (search_configuration_id, ruleset_id, ruleset_version_id, position) VALUES (?, ?, ?, ?)",
			cfg.ID, rulesetID, versionID, pos,
		); err != nil {
			return nil, fmt.Errorf("failed to attach ruleset: %w", err)
		}
		if versionID.Valid {
			cfg.RulesetVersionIDs[rulesetID] = versionID.String
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit search configuration: %w", err)
	}
	return cfg, nil
}

// GetByID gets a configuration by ID. Returns ErrNotFound if not found.
func (r *SearchConfigurationRepo) GetByID(ctx context.Context, id string) (*SearchConfiguration, error) {
	var (
		cfg       SearchConfiguration
		knobsJSON string
		isActive  int
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, project_id, query_template_id, knobs, idx, is_active, created_at FROM search_configurations WHERE id = ?",
		id,
	).Scan(&cfg.ID, &cfg.ProjectID, &cfg.QueryTemplateID, &knobsJSON, &cfg.Index, &isActive, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query search configuration: %w", err)
	}
	if err := json.Unmarshal([]byte(knobsJSON), &cfg.Knobs); err != nil {
		return nil, fmt.Errorf("failed to decode knobs: %w", err)
	}
	cfg.IsActive = isActive == 1
	cfg.CreatedAt = fromNanos(createdAt)

	rows, err := r.db.QueryContext(ctx,
		"SELECT ruleset_id, ruleset_version_id FROM search_configuration_rulesets WHERE search_configuration_id = ? ORDER BY position",
		id)
	if err != nil {
		return nil, fmt.Errorf("failed to query attached rulesets: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	cfg.RulesetIDs = []string{}
	cfg.RulesetVersionIDs = map[string]string{}
	for rows.Next() {
		var (
			rulesetID string
			versionID sql.NullString
		)
		if err := rows.Scan(&rulesetID, &versionID); err != nil {
			return nil, fmt.Errorf("failed to scan attached ruleset: %w", err)
		}
		cfg.RulesetIDs = append(cfg.RulesetIDs, rulesetID)
		if versionID.Valid {
			cfg.RulesetVersionIDs[rulesetID] = versionID.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return &cfg, nil
}

// Load re-fetches a configuration and checks it still sits at index.
func (r *SearchConfigurationRepo) Load(ctx context.Context, id string, index int) (*SearchConfiguration, error) {
	cfg, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cfg.Index != index {
		return nil, fmt.Errorf("%w: %s is at %d, expected %d", ErrIndexMismatch, id, cfg.Index, index)
	}
	return cfg, nil
}

const summarySelect = `SELECT sc.id, sc.idx, sc.query_template_id, sc.is_active, sc.created_at,
	(SELECT e.combined_score FROM executions e
	 WHERE e.search_configuration_id = sc.id
	 ORDER BY e.created_at DESC, e.rowid DESC LIMIT 1)
	FROM search_configurations sc`

// Summarize returns the window row for a configuration.
func (r *SearchConfigurationRepo) Summarize(ctx context.Context, id string) (*SearchConfigurationSummary, error) {
	row := r.db.QueryRowContext(ctx, summarySelect+" WHERE sc.id = ?", id)
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query search configuration summary: %w", err)
	}
	return s, nil
}

// Active returns the active configuration with the highest index.
func (r *SearchConfigurationRepo) Active(ctx context.Context, projectID string) (*SearchConfiguration, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM search_configurations WHERE project_id = ? AND is_active = 1 ORDER BY idx DESC LIMIT 1",
		projectID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active search configuration: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Count returns the length of the project's configuration sequence.
func (r *SearchConfigurationRepo) Count(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM search_configurations WHERE project_id = ?", projectID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count search configurations: %w", err)
	}
	return n, nil
}

// ListAround returns up to width summaries ending at center; near the start of
// the sequence the window extends to the right instead.
func (r *SearchConfigurationRepo) ListAround(ctx context.Context, projectID string, center, width int) ([]SearchConfigurationSummary, error) {
	if width <= 0 {
		return []SearchConfigurationSummary{}, nil
	}
	lo := max(0, center-width+1)
	return r.listSummaries(ctx,
		summarySelect+" WHERE sc.project_id = ? AND sc.idx >= ? ORDER BY sc.idx ASC LIMIT ?",
		projectID, lo, width)
}

// ListWindow returns up to limit summaries strictly left or right of refID.
func (r *SearchConfigurationRepo) ListWindow(ctx context.Context, projectID, refID string, direction Direction, limit int) ([]SearchConfigurationSummary, error) {
	if limit <= 0 {
		return []SearchConfigurationSummary{}, nil
	}

	var refIndex int
	err := r.db.QueryRowContext(ctx,
		"SELECT idx FROM search_configurations WHERE id = ? AND project_id = ?", refID, projectID,
	).Scan(&refIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reference configuration: %w", err)
	}

	switch direction {
	case DirectionLeft:
		items, err := r.listSummaries(ctx,
			summarySelect+" WHERE sc.project_id = ? AND sc.idx < ? ORDER BY sc.idx DESC LIMIT ?",
			projectID, refIndex, limit)
		if err != nil {
			return nil, err
		}
		slices.Reverse(items)
		return items, nil
	case DirectionRight:
		return r.listSummaries(ctx,
			summarySelect+" WHERE sc.project_id = ? AND sc.idx > ? ORDER BY sc.idx ASC LIMIT ?",
			projectID, refIndex, limit)
	default:
		return nil, fmt.Errorf("unknown window direction %q", direction)
	}
}

func (r *SearchConfigurationRepo) listSummaries(ctx context.Context, query string, args ...any) ([]SearchConfigurationSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query search configuration summaries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []SearchConfigurationSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search configuration summary: %w", err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

func scanSummary(row rowScanner) (*SearchConfigurationSummary, error) {
	var (
		s         SearchConfigurationSummary
		isActive  int
		createdAt int64
		score     sql.NullFloat64
	)
	if err := row.Scan(&s.ID, &s.Index, &s.QueryTemplateID, &isActive, &createdAt, &score); err != nil {
		return nil, err
	}
	s.IsActive = isActive == 1
	s.CreatedAt = fromNanos(createdAt)
	if score.Valid {
		v := score.Float64
		s.CombinedScore = &v
	}
	return &s, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ruleset_store.go -package=mocks relevance-workbench/internal/storage RulesetStore,RulesetVersionStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// RulesetStore defines the interface for ruleset container storage.
type RulesetStore interface {
	// Create inserts a new, versionless ruleset.
	Create(ctx context.Context, projectID, name string) (*Ruleset, error)
	// GetByID gets a ruleset by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Ruleset, error)
}

// RulesetVersionStore defines the interface for ruleset version storage.
type RulesetVersionStore interface {
	// Create inserts a new version. It never modifies existing rows.
	Create(ctx context.Context, rulesetID string, parentID *string, value RulesetValue) (*RulesetVersion, error)
	// Latest returns the most recently created version of a ruleset.
	// Returns ErrNotFound when the chain is empty.
	Latest(ctx context.Context, rulesetID string) (*RulesetVersion, error)
	// LatestForConfiguration returns the version attached to the configuration,
	// falling back to Latest when the configuration does not pin one.
	LatestForConfiguration(ctx context.Context, rulesetID, configurationID string) (*RulesetVersion, error)
	// ListByRuleset returns every version of a ruleset, oldest first.
	ListByRuleset(ctx context.Context, rulesetID string) ([]RulesetVersion, error)
}

// RulesetRepo provides methods for ruleset operations.
// It implements RulesetStore.
type RulesetRepo struct {
	db *sql.DB
}

// NewRulesetRepo creates a new RulesetRepo.
func NewRulesetRepo(db *sql.DB) *RulesetRepo {
	return &RulesetRepo{db: db}
}

// Create inserts a new ruleset.
func (r *RulesetRepo) Create(ctx context.Context, projectID, name string) (*Ruleset, error) {
	rs := &Ruleset{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now(),
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO rulesets (id, project_id, name, created_at) VALUES (?, ?, ?, ?)",
		rs.ID, rs.ProjectID, rs.Name, toNanos(rs.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ruleset: %w", err)
	}
	return rs, nil
}

// GetByID gets a ruleset by ID. Returns ErrNotFound if not found.
func (r *RulesetRepo) GetByID(ctx context.Context, id string) (*Ruleset, error) {
	var (
		rs        Ruleset
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, project_id, name, created_at FROM rulesets WHERE id = ?", id,
	).Scan(&rs.ID, &rs.ProjectID, &rs.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ruleset: %w", err)
	}
	rs.CreatedAt = fromNanos(createdAt)
	return &rs, nil
}

// RulesetVersionRepo provides methods for ruleset version operations.
// It implements RulesetVersionStore.
type RulesetVersionRepo struct {
	db *sql.DB
}

// NewRulesetVersionRepo creates a new RulesetVersionRepo.
func NewRulesetVersionRepo(db *sql.DB) *RulesetVersionRepo {
	return &RulesetVersionRepo{db: db}
}

const rulesetVersionColumns = "v.id, v.ruleset_id, v.parent_id, v.value, v.created_at"

// Create inserts a new version whose parent is parentID.
func (r *RulesetVersionRepo) Create(ctx context.Context, rulesetID string, parentID *string, value RulesetValue) (*RulesetVersion, error) {
	value = normalizeRulesetValue(value)
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ruleset value: %w", err)
	}

	v := &RulesetVersion{
		ID:        uuid.New().String(),
		RulesetID: rulesetID,
		ParentID:  parentID,
		Value:     value,
		CreatedAt: now(),
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO ruleset_versions (id, ruleset_id, parent_id, value, created_at) VALUES (?, ?, ?, ?, ?)",
		v.ID, v.RulesetID, nullString(v.ParentID), string(payload), toNanos(v.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ruleset version: %w", err)
	}
	return v, nil
}

// Latest resolves by creation time, not by walking parent links.
func (r *RulesetVersionRepo) Latest(ctx context.Context, rulesetID string) (*RulesetVersion, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+rulesetVersionColumns+" FROM ruleset_versions v WHERE v.ruleset_id = ? ORDER BY v.created_at DESC, v.rowid DESC LIMIT 1",
		rulesetID)
	v, err := scanRulesetVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest ruleset version: %w", err)
	}
	return v, nil
}

// LatestForConfiguration returns the version pinned by the configuration, or Latest.
func (r *RulesetVersionRepo) LatestForConfiguration(ctx context.Context, rulesetID, configurationID string) (*RulesetVersion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+rulesetVersionColumns+`
		 FROM search_configuration_rulesets scr
		 JOIN ruleset_versions v ON v.id = scr.ruleset_version_id
		 WHERE scr.search_configuration_id = ? AND scr.ruleset_id = ?`,
		configurationID, rulesetID)
	v, err := scanRulesetVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return r.Latest(ctx, rulesetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query configuration ruleset version: %w", err)
	}
	return v, nil
}

// ListByRuleset returns every version of a ruleset, oldest first.
func (r *RulesetVersionRepo) ListByRuleset(ctx context.Context, rulesetID string) ([]RulesetVersion, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+rulesetVersionColumns+" FROM ruleset_versions v WHERE v.ruleset_id = ? ORDER BY v.created_at, v.rowid",
		rulesetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ruleset versions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	versions := []RulesetVersion{}
	for rows.Next() {
		v, err := scanRulesetVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ruleset version: %w", err)
		}
		versions = append(versions, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return versions, nil
}

func scanRulesetVersion(row rowScanner) (*RulesetVersion, error) {
	var (
		v         RulesetVersion
		parentID  sql.NullString
		payload   string
		createdAt int64
	)
	if err := row.Scan(&v.ID, &v.RulesetID, &parentID, &payload, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &v.Value); err != nil {
		return nil, fmt.Errorf("failed to decode ruleset value: %w", err)
	}
	v.Value = normalizeRulesetValue(v.Value)
	if parentID.Valid {
		v.ParentID = &parentID.String
	}
	v.CreatedAt = fromNanos(createdAt)
	return &v, nil
}

// normalizeRulesetValue replaces nil slices with empty ones so stored values
// always encode as arrays.
func normalizeRulesetValue(v RulesetValue) RulesetValue {
	rules := make([]Rule, len(v.Rules))
	copy(rules, v.Rules)
	for i := range rules {
		if rules[i].Instructions == nil {
			rules[i].Instructions = []RuleInstruction{}
		}
	}
	v.Rules = rules
	if v.Conditions == nil {
		v.Conditions = []Condition{}
	}
	return v
}

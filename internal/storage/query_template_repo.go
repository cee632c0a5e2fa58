package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_template_store.go -package=mocks relevance-workbench/internal/storage QueryTemplateStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// QueryTemplateStore defines the interface for query template version storage.
type QueryTemplateStore interface {
	// Create inserts a new template version. It never modifies existing rows.
	Create(ctx context.Context, parentID *string, description, projectID, query string) (*QueryTemplate, error)
	// GetByID gets a template version by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*QueryTemplate, error)
	// Latest returns the most recently created template of a project.
	// Returns ErrNotFound if the project has none.
	Latest(ctx context.Context, projectID string) (*QueryTemplate, error)
	// ListByProject returns every template version of a project, oldest first.
	ListByProject(ctx context.Context, projectID string) ([]QueryTemplate, error)
}

// QueryTemplateRepo provides methods for query template operations.
// It implements the QueryTemplateStore interface.
type QueryTemplateRepo struct {
	db *sql.DB
}

// NewQueryTemplateRepo creates a new QueryTemplateRepo.
func NewQueryTemplateRepo(db *sql.DB) *QueryTemplateRepo {
	return &QueryTemplateRepo{db: db}
}

const queryTemplateColumns = "id, project_id, parent_id, description, query, created_at"

// Create inserts a new template version whose parent is parentID.
// Two versions may share a parent; forks are accepted.
func (r *QueryTemplateRepo) Create(ctx context.Context, parentID *string, description, projectID, query string) (*QueryTemplate, error) {
	t := &QueryTemplate{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		ParentID:    parentID,
		Description: description,
		Query:       query,
		CreatedAt:   now(),
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO query_templates ("+queryTemplateColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		t.ID, t.ProjectID, nullString(t.ParentID), t.Description, t.Query, toNanos(t.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert query template: %w", err)
	}
	return t, nil
}

// GetByID gets a template version by ID. Returns ErrNotFound if not found.
func (r *QueryTemplateRepo) GetByID(ctx context.Context, id string) (*QueryTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+queryTemplateColumns+" FROM query_templates WHERE id = ?", id)
	t, err := scanQueryTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query query template: %w", err)
	}
	return t, nil
}

// Latest resolves by creation time, not by walking parent links: the most
// recently created version wins even when it sits on a different branch.
func (r *QueryTemplateRepo) Latest(ctx context.Context, projectID string) (*QueryTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+queryTemplateColumns+" FROM query_templates WHERE project_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1",
		projectID)
	t, err := scanQueryTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest query template: %w", err)
	}
	return t, nil
}

// ListByProject returns every template version of a project, oldest first.
// Returns an empty slice if the project has none.
func (r *QueryTemplateRepo) ListByProject(ctx context.Context, projectID string) ([]QueryTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+queryTemplateColumns+" FROM query_templates WHERE project_id = ? ORDER BY created_at, rowid",
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query query templates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	templates := []QueryTemplate{}
	for rows.Next() {
		t, err := scanQueryTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan query template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return templates, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueryTemplate(row rowScanner) (*QueryTemplate, error) {
	var (
		t         QueryTemplate
		parentID  sql.NullString
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &parentID, &t.Description, &t.Query, &createdAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	t.CreatedAt = fromNanos(createdAt)
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

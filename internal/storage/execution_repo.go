package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_execution_store.go -package=mocks relevance-workbench/internal/storage ExecutionStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ExecutionStore defines the interface for execution result storage.
type ExecutionStore interface {
	// Create records an execution and its per-phrase rows. IDs and timestamps are assigned here.
	Create(ctx context.Context, execution *Execution, phrases []SearchPhraseExecution) error
	// Latest returns the most recent execution of a configuration. Returns ErrNotFound if none.
	Latest(ctx context.Context, searchConfigurationID string) (*Execution, error)
	// ListPhrases returns the per-phrase rows of an execution.
	ListPhrases(ctx context.Context, executionID string) ([]SearchPhraseExecution, error)
}

// ExecutionRepo provides methods for execution operations.
// It implements ExecutionStore.
type ExecutionRepo struct {
	db *sql.DB
}

// NewExecutionRepo creates a new ExecutionRepo.
func NewExecutionRepo(db *sql.DB) *ExecutionRepo {
	return &ExecutionRepo{db: db}
}

// Create inserts the execution and its phrases in one transaction. Earlier
// executions are kept; the new one simply becomes the latest.
func (r *ExecutionRepo) Create(ctx context.Context, execution *Execution, phrases []SearchPhraseExecution) error {
	execution.ID = uuid.New().String()
	execution.CreatedAt = now()
	if execution.AllScores == nil {
		execution.AllScores = map[string]float64{}
	}
	scores, err := json.Marshal(execution.AllScores)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO executions (id, search_configuration_id, combined_score, all_scores, took_p50, took_p95, took_p99, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		execution.ID, execution.SearchConfigurationID, execution.CombinedScore, string(scores),
		execution.Meta.TookP50, execution.Meta.TookP95, execution.Meta.TookP99, toNanos(execution.CreatedAt),
	); err != nil {
		return fmt.Errorf("failed to insert execution: %w", err)
	}

	for i := range phrases {
		p := &phrases[i]
		p.ID = uuid.New().String()
		p.ExecutionID = execution.ID
		if err := insertPhrase(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit execution: %w", err)
	}
	return nil
}

func insertPhrase(ctx context.Context, tx *sql.Tx, p *SearchPhraseExecution) error {
	if p.Failed() {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO search_phrase_executions (id, execution_id, phrase, error) VALUES (?, ?, ?, ?)",
			p.ID, p.ExecutionID, p.Phrase, p.Error)
		if err != nil {
			return fmt.Errorf("failed to insert phrase execution: %w", err)
		}
		return nil
	}

	scores, err := json.Marshal(p.AllScores)
	if err != nil {
		return fmt.Errorf("failed to encode phrase scores: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO search_phrase_executions (id, execution_id, phrase, combined_score, all_scores, total_results, took_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ExecutionID, p.Phrase, p.CombinedScore, string(scores), p.TotalResults, p.TookMs)
	if err != nil {
		return fmt.Errorf("failed to insert phrase execution: %w", err)
	}
	return nil
}

// Latest returns the most recent execution of a configuration.
func (r *ExecutionRepo) Latest(ctx context.Context, searchConfigurationID string) (*Execution, error) {
	var (
		e         Execution
		scores    string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, search_configuration_id, combined_score, all_scores, took_p50, took_p95, took_p99, created_at
		 FROM executions WHERE search_configuration_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		searchConfigurationID,
	).Scan(&e.ID, &e.SearchConfigurationID, &e.CombinedScore, &scores,
		&e.Meta.TookP50, &e.Meta.TookP95, &e.Meta.TookP99, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query execution: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &e.AllScores); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	e.CreatedAt = fromNanos(createdAt)
	return &e, nil
}

// ListPhrases returns the per-phrase rows of an execution in insertion order.
func (r *ExecutionRepo) ListPhrases(ctx context.Context, executionID string) ([]SearchPhraseExecution, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, execution_id, phrase, combined_score, all_scores, total_results, took_ms, error
		 FROM search_phrase_executions WHERE execution_id = ? ORDER BY rowid`,
		executionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query phrase executions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	phrases := []SearchPhraseExecution{}
	for rows.Next() {
		var (
			p            SearchPhraseExecution
			score        sql.NullFloat64
			scores       sql.NullString
			totalResults sql.NullInt64
			tookMs       sql.NullInt64
			errMsg       sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ExecutionID, &p.Phrase, &score, &scores, &totalResults, &tookMs, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan phrase execution: %w", err)
		}
		if errMsg.Valid && errMsg.String != "" {
			p.Error = errMsg.String
		} else {
			p.CombinedScore = score.Float64
			p.TotalResults = int(totalResults.Int64)
			p.TookMs = int(tookMs.Int64)
			if scores.Valid {
				if err := json.Unmarshal([]byte(scores.String), &p.AllScores); err != nil {
					return nil, fmt.Errorf("failed to decode phrase scores: %w", err)
				}
			}
		}
		phrases = append(phrases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return phrases, nil
}

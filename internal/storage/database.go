package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// now is the clock used for created_at columns. Tests replace it to control
// version ordering.
var now = func() time.Time { return time.Now().UTC() }

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// created_at columns hold Unix nanoseconds: "latest version" is resolved by
// creation time and needs sub-second resolution.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS query_templates (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			parent_id TEXT,
			description TEXT NOT NULL DEFAULT '',
			query TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES query_templates(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_query_templates_project ON query_templates (project_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS rulesets (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ruleset_versions (
			id TEXT PRIMARY KEY,
			ruleset_id TEXT NOT NULL,
			parent_id TEXT,
			value TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (ruleset_id) REFERENCES rulesets(id),
			FOREIGN KEY (parent_id) REFERENCES ruleset_versions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ruleset_versions_ruleset ON ruleset_versions (ruleset_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS search_configurations (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			query_template_id TEXT NOT NULL,
			knobs TEXT NOT NULL,
			idx INTEGER NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (query_template_id) REFERENCES query_templates(id),
			UNIQUE (project_id, idx)
		);`,
		`CREATE TABLE IF NOT EXISTS search_configuration_rulesets (
			search_configuration_id TEXT NOT NULL,
			ruleset_id TEXT NOT NULL,
			ruleset_version_id TEXT,
			position INTEGER NOT NULL,
			PRIMARY KEY (search_configuration_id, ruleset_id),
			FOREIGN KEY (search_configuration_id) REFERENCES search_configurations(id) ON DELETE CASCADE,
			FOREIGN KEY (ruleset_id) REFERENCES rulesets(id),
			FOREIGN KEY (ruleset_version_id) REFERENCES ruleset_versions(id)
		);`,
		`CREATE TABLE IF NOT EXISTS executions (
			id TEXT PRIMARY KEY,
			search_configuration_id TEXT NOT NULL,
			combined_score REAL NOT NULL,
			all_scores TEXT NOT NULL,
			took_p50 REAL NOT NULL DEFAULT 0,
			took_p95 REAL NOT NULL DEFAULT 0,
			took_p99 REAL NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (search_configuration_id) REFERENCES search_configurations(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_executions_configuration ON executions (search_configuration_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS search_phrase_executions (
			id TEXT PRIMARY KEY,
			execution_id TEXT NOT NULL,
			phrase TEXT NOT NULL,
			combined_score REAL,
			all_scores TEXT,
			total_results INTEGER,
			took_ms INTEGER,
			error TEXT,
			FOREIGN KEY (execution_id) REFERENCES executions(id) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func toNanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

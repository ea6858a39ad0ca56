// Package history persists per-call enforcement outcomes in SQLite so
// operators can see which functions keep being called against their
// conventions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS calls (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	function   TEXT    NOT NULL,
	outcome    TEXT    NOT NULL,
	violations INTEGER NOT NULL DEFAULT 0,
	created_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calls_function ON calls(function);
`

// Store records call outcomes in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database and applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history: storage path is required")
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores one call outcome. outcome is audit.DecisionForwarded or
// audit.DecisionRejected; violations is the number of boundary
// violations in the rejected call.
func (s *Store) Record(ctx context.Context, function, outcome string, violations int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calls (function, outcome, violations, created_ms) VALUES (?, ?, ?, ?)`,
		function, outcome, violations, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("history: record call: %w", err)
	}
	return nil
}

// FuncSummary aggregates outcomes for one function.
type FuncSummary struct {
	Function string    `json:"function"`
	Calls    int       `json:"calls"`
	Rejected int       `json:"rejected"`
	LastCall time.Time `json:"last_call"`
}

// Summary returns per-function aggregates ordered by function name.
func (s *Store) Summary(ctx context.Context) ([]FuncSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT function,
		       COUNT(*),
		       SUM(CASE WHEN outcome = 'rejected' THEN 1 ELSE 0 END),
		       MAX(created_ms)
		FROM calls
		GROUP BY function
		ORDER BY function`)
	if err != nil {
		return nil, fmt.Errorf("history: query summary: %w", err)
	}
	defer rows.Close()

	var out []FuncSummary
	for rows.Next() {
		var fs FuncSummary
		var lastMs int64
		if err := rows.Scan(&fs.Function, &fs.Calls, &fs.Rejected, &lastMs); err != nil {
			return nil, fmt.Errorf("history: scan summary: %w", err)
		}
		fs.LastCall = time.UnixMilli(lastMs).UTC()
		out = append(out, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate summary: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

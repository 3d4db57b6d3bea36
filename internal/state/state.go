// Package state persists the last-used generation parameters (year, month,
// issue depth) between runs, so the CLI and the HTTP API can fall back to
// whatever the user requested last. Only invocation parameters are stored;
// computed graphs are never persisted.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS last_used (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	issue_depth INTEGER NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// LastUsed holds the parameters of the most recent generation run.
type LastUsed struct {
	Year       int
	Month      int
	IssueDepth int
	UpdatedAt  time.Time
}

// Store is a sqlite-backed settings store. Safe for use from a single
// process; the single-row table makes writes last-wins.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the store at the given path. Parent
// directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the stored last-used parameters. ok is false when nothing
// has been stored yet.
func (s *Store) Load() (last LastUsed, ok bool, err error) {
	row := s.db.QueryRow(`SELECT year, month, issue_depth, updated_at FROM last_used WHERE id = 1`)
	if err := row.Scan(&last.Year, &last.Month, &last.IssueDepth, &last.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LastUsed{}, false, nil
		}
		return LastUsed{}, false, fmt.Errorf("load last used settings: %w", err)
	}
	return last, true, nil
}

// Save stores the last-used parameters, replacing any previous row.
func (s *Store) Save(last LastUsed) error {
	if last.UpdatedAt.IsZero() {
		last.UpdatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO last_used (id, year, month, issue_depth, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			year = excluded.year,
			month = excluded.month,
			issue_depth = excluded.issue_depth,
			updated_at = excluded.updated_at`,
		last.Year, last.Month, last.IssueDepth, last.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save last used settings: %w", err)
	}
	return nil
}

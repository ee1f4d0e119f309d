// internal/history/store.go

// Package history persists executed statements in a local SQLite database.
package history

import (
	"database/sql"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

const retention = "-90 days"

// Store is the statement history, keyed by the connection's normalized
// target so renaming a profile keeps its history.
type Store struct {
	db *sql.DB
}

// Open opens the history database at the default XDG data path
func Open() (*Store, error) {
	path, err := xdg.DataFile("dbvim/history.db")
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt opens (and initializes) a history database at an explicit path
func OpenAt(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			target TEXT NOT NULL,
			statement TEXT NOT NULL,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			duration_ms INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_text TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_history_target ON history(target);
		CREATE INDEX IF NOT EXISTS idx_history_executed_at ON history(executed_at);
	`); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	s.prune()
	return s, nil
}

// Close closes the store
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records an executed statement
func (s *Store) Add(e *Entry) error {
	res, err := s.db.Exec(`
		INSERT INTO history (target, statement, executed_at, duration_ms, row_count, status, error_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Target, e.Statement, e.ExecutedAt, e.DurationMs, e.RowCount, e.Status, e.ErrorText)
	if err != nil {
		return err
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// List returns the most recent entries for a target, newest first
func (s *Store) List(target string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, target, statement, executed_at, duration_ms, row_count, status, IFNULL(error_text, '')
		FROM history
		WHERE target = ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ?`, target, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search finds entries by statement substring
func (s *Store) Search(target, substr string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, target, statement, executed_at, duration_ms, row_count, status, IFNULL(error_text, '')
		FROM history
		WHERE target = ? AND statement LIKE ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ?`, target, "%"+substr+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Count returns the number of entries for a target
func (s *Store) Count(target string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM history WHERE target = ?", target).Scan(&n)
	return n, err
}

// Delete removes one entry
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM history WHERE id = ?", id)
	return err
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Target, &e.Statement, &e.ExecutedAt,
			&e.DurationMs, &e.RowCount, &e.Status, &e.ErrorText); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// prune drops entries past the retention window. Best effort; history is
// not load-bearing.
func (s *Store) prune() {
	s.db.Exec("DELETE FROM history WHERE executed_at < datetime('now', ?)", retention)
}

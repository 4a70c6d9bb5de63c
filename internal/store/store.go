// Package store persists the shell's command history in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/store/migrations"
)

const memoryPath = ":memory:"

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps a SQLite database connection for history storage.
// It implements the domain.HistoryStore interface.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path and runs migrations.
func New(path string) (*Store, error) {
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == memoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		CloseDB(db)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != memoryPath {
		if _, err = db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
			CloseDB(db)
			return nil, fmt.Errorf("configure database: %w", err)
		}
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		CloseDB(db)
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB creates a Store from an existing, already migrated connection.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Path is the file the store was opened from; empty for NewWithDB.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CloseDB closes a database connection and reports any error on stderr.
// Intended for defer statements where errors would otherwise be ignored.
func CloseDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		// the log package may not be initialized yet
		fmt.Fprintf(os.Stderr, "store: close database: %v\n", err)
	}
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == memoryPath {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Insert records one entry and returns its id. A zero Timestamp is
// replaced with the current time.
func (s *Store) Insert(entry domain.HistoryEntry) (int64, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Outcome == "" {
		entry.Outcome = domain.OutcomeOK
	}

	res, err := s.db.Exec(
		`INSERT INTO history (session_id, line, outcome, timestamp)
		 VALUES (?, ?, ?, ?)`,
		entry.SessionID,
		entry.Line,
		string(entry.Outcome),
		entry.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}
	return res.LastInsertId()
}

// List returns entries matching filter, newest first.
func (s *Store) List(filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	query := `SELECT id, session_id, line, outcome, timestamp FROM history`

	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}

	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}

	if filter.Contains != "" {
		clauses = append(clauses, `line LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Contains)+"%")
	}

	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e       domain.HistoryEntry
		outcome string
		ts      string
	)
	if err := rows.Scan(&e.ID, &e.SessionID, &e.Line, &outcome, &ts); err != nil {
		return e, fmt.Errorf("scan history: %w", err)
	}

	e.Outcome = domain.Outcome(outcome)

	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return e, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	e.Timestamp = t
	return e, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Count returns the number of stored entries.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Prune keeps the newest limit entries and deletes the rest, returning
// how many were removed. A limit <= 0 deletes nothing.
func (s *Store) Prune(limit int) (int64, error) {
	if limit <= 0 {
		return 0, nil
	}

	res, err := s.db.Exec(
		`DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?
		)`,
		limit,
	)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM history")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

var _ domain.HistoryStore = (*Store)(nil)

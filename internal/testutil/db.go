// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/store"
	"github.com/footprint-tools/commands/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestStore wraps NewTestDB in a history store.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedHistory inserts lines one second apart starting at start, all in
// session with outcome ok.
func SeedHistory(t *testing.T, s domain.HistoryStore, session string, start time.Time, lines ...string) {
	t.Helper()

	for i, line := range lines {
		_, err := s.Insert(domain.HistoryEntry{
			SessionID: session,
			Line:      line,
			Outcome:   domain.OutcomeOK,
			Timestamp: start.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err, "failed to seed history line %q", line)
	}
}

package migrations_test

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/commands/internal/store/migrations"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	all, err := migrations.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 3)

	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i].Version, all[i-1].Version)
	}
	require.Equal(t, "history", all[0].Description)
}

func TestRunIdempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, migrations.Run(db))
	v1, err := migrations.CurrentVersion(db)
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))
	v2, err := migrations.CurrentVersion(db)
	require.NoError(t, err)

	require.Equal(t, v1, v2)

	pending, err := migrations.Pending(db)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestRun_CreatesHistoryTable(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, migrations.Run(db))

	_, err := db.Exec(`INSERT INTO history (session_id, line, outcome, timestamp) VALUES ('s', 'show', 'ok', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO history (session_id, line, outcome, timestamp) VALUES ('s', 'show', 'weird', '2024-01-01T00:00:00Z')`)
	require.Error(t, err, "outcome values are checked")
}

func TestPending_FreshDatabase(t *testing.T) {
	db := openMemory(t)

	all, err := migrations.Load()
	require.NoError(t, err)

	pending, err := migrations.Pending(db)
	require.NoError(t, err)
	require.Equal(t, all, pending)
}

func TestLoadFS_Errors(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"bad name": {
			"m/nounderscore.sql": {Data: []byte("SELECT 1")},
		},
		"bad version": {
			"m/xx_thing.sql": {Data: []byte("SELECT 1")},
		},
		"duplicate version": {
			"m/01_a.sql":  {Data: []byte("SELECT 1")},
			"m/001_b.sql": {Data: []byte("SELECT 1")},
		},
	}

	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := migrations.LoadFS(fsys, "m")
			require.Error(t, err)
		})
	}
}

func TestApply_RollsBackFailedMigration(t *testing.T) {
	db := openMemory(t)

	ms, err := migrations.LoadFS(fstest.MapFS{
		"m/01_ok.sql":     {Data: []byte("CREATE TABLE a (x INTEGER)")},
		"m/02_broken.sql": {Data: []byte("CREATE TABLE b (x INTEGER); NOT SQL")},
		"m/README.md":     {Data: []byte("ignored")},
	}, "m")
	require.NoError(t, err)
	require.Len(t, ms, 2)

	err = migrations.Apply(db, ms)
	require.Error(t, err)
	require.Contains(t, err.Error(), "migration 02_broken")

	v, err := migrations.CurrentVersion(db)
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

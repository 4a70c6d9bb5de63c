package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/store/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err)

	return NewWithDB(db)
}

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func insert(t *testing.T, s *Store, session, line string, outcome domain.Outcome, at time.Time) int64 {
	t.Helper()
	id, err := s.Insert(domain.HistoryEntry{
		SessionID: session,
		Line:      line,
		Outcome:   outcome,
		Timestamp: at,
	})
	require.NoError(t, err)
	return id
}

func lines(entries []domain.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Line
	}
	return out
}

func TestStore_Insert(t *testing.T) {
	s := newTestStore(t)

	id := insert(t, s, "sess-1", "show version", domain.OutcomeOK, base)
	require.Positive(t, id)

	entries, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	require.Equal(t, id, got.ID)
	require.Equal(t, "sess-1", got.SessionID)
	require.Equal(t, "show version", got.Line)
	require.Equal(t, domain.OutcomeOK, got.Outcome)
	require.True(t, base.Equal(got.Timestamp))
}

func TestStore_Insert_Defaults(t *testing.T) {
	s := newTestStore(t)

	before := time.Now().Add(-time.Second)
	_, err := s.Insert(domain.HistoryEntry{SessionID: "s", Line: "ping"})
	require.NoError(t, err)

	entries, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.OutcomeOK, entries[0].Outcome)
	require.True(t, entries[0].Timestamp.After(before))
}

func TestStore_Insert_RejectsUnknownOutcome(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Insert(domain.HistoryEntry{SessionID: "s", Line: "x", Outcome: "bogus", Timestamp: base})
	require.Error(t, err)
}

func TestStore_List_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	insert(t, s, "a", "first", domain.OutcomeOK, base)
	insert(t, s, "a", "third", domain.OutcomeOK, base.Add(2*time.Second))
	insert(t, s, "a", "second", domain.OutcomeOK, base.Add(time.Second+500*time.Millisecond))
	insert(t, s, "a", "third-again", domain.OutcomeOK, base.Add(2*time.Second))

	entries, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"third-again", "third", "second", "first"}, lines(entries))
}

func TestStore_List_WithFilters(t *testing.T) {
	s := newTestStore(t)

	insert(t, s, "a", "show version", domain.OutcomeOK, base)
	insert(t, s, "a", "shwo", domain.OutcomeNoMatch, base.Add(time.Minute))
	insert(t, s, "b", "show interface eth0", domain.OutcomeOK, base.Add(2*time.Minute))
	insert(t, s, "b", "set 100%", domain.OutcomeFailed, base.Add(3*time.Minute))
	insert(t, s, "b", "s", domain.OutcomeAmbiguous, base.Add(4*time.Minute))

	since := base.Add(2 * time.Minute)

	tests := []struct {
		name   string
		filter domain.HistoryFilter
		want   []string
	}{
		{
			name:   "by session",
			filter: domain.HistoryFilter{SessionID: "a"},
			want:   []string{"shwo", "show version"},
		},
		{
			name:   "by outcome",
			filter: domain.HistoryFilter{Outcome: domain.OutcomeOK},
			want:   []string{"show interface eth0", "show version"},
		},
		{
			name:   "contains",
			filter: domain.HistoryFilter{Contains: "show"},
			want:   []string{"show interface eth0", "show version"},
		},
		{
			name:   "contains treats wildcards literally",
			filter: domain.HistoryFilter{Contains: "0%"},
			want:   []string{"set 100%"},
		},
		{
			name:   "since",
			filter: domain.HistoryFilter{Since: &since},
			want:   []string{"s", "set 100%", "show interface eth0"},
		},
		{
			name:   "limit",
			filter: domain.HistoryFilter{Limit: 2},
			want:   []string{"s", "set 100%"},
		},
		{
			name:   "combined",
			filter: domain.HistoryFilter{SessionID: "b", Outcome: domain.OutcomeOK},
			want:   []string{"show interface eth0"},
		},
		{
			name:   "nothing matches",
			filter: domain.HistoryFilter{SessionID: "zzz"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.List(tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, lines(entries))
		})
	}
}

func TestStore_CountAndPrune(t *testing.T) {
	s := newTestStore(t)

	for i := range 5 {
		insert(t, s, "a", string(rune('a'+i)), domain.OutcomeOK, base.Add(time.Duration(i)*time.Second))
	}

	n, err := s.Count()
	require.NoError(t, err)
	require.EqualValues(t, 5, n)

	removed, err := s.Prune(0)
	require.NoError(t, err)
	require.Zero(t, removed)

	removed, err = s.Prune(3)
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	entries, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"e", "d", "c"}, lines(entries))

	removed, err = s.Prune(10)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)

	removed, err := s.Clear()
	require.NoError(t, err)
	require.Zero(t, removed)

	insert(t, s, "a", "one", domain.OutcomeOK, base)
	insert(t, s, "b", "two", domain.OutcomeFailed, base)

	removed, err = s.Clear()
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	n, err := s.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := New(path)
	require.NoError(t, err)
	require.Equal(t, path, s.Path())

	insert(t, s, "a", "ping", domain.OutcomeOK, base)
	require.NoError(t, s.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// reopening keeps data and does not re-run migrations
	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestNew_Memory(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	insert(t, s, "a", "ping", domain.OutcomeOK, base)
	n, err := s.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestNew_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := New(filepath.Join(blocker, "history.db"))
	require.Error(t, err)
}

func TestStore_Close(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	require.NoError(t, (&Store{}).Close())
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func session(gameID string, start time.Time, pieces, rows int, finished bool) Session {
	return Session{
		GameID:    gameID,
		Frontend:  "terminal",
		StartedAt: start,
		EndedAt:   start.Add(90 * time.Second),
		Pieces:    pieces,
		Rows:      rows,
		Finished:  finished,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i, s := range []Session{
		session("tetris", base, 10, 2, true),
		session("tetris", base.Add(time.Hour), 25, 6, false),
		session("tetris_kick", base.Add(2*time.Hour), 40, 11, true),
	} {
		id, err := store.SaveSession(s)
		if err != nil {
			t.Fatalf("SaveSession(%d) failed: %v", i, err)
		}
		if id <= 0 {
			t.Errorf("SaveSession(%d) id = %d, expected positive", i, id)
		}
	}

	got, err := store.RecentSessions("tetris", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentSessions() len = %d, expected 2", len(got))
	}
	if got[0].Pieces != 25 || got[0].Rows != 6 || got[0].Finished {
		t.Errorf("newest session = %+v, expected pieces 25 rows 6 unfinished", got[0])
	}
	if !got[1].StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, expected %v", got[1].StartedAt, base)
	}
	if got[1].Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, expected 90s", got[1].Duration())
	}

	all, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions(all) failed: %v", err)
	}
	if len(all) != 3 || all[0].GameID != "tetris_kick" {
		t.Errorf("RecentSessions(all) = %+v, expected 3 sessions newest tetris_kick", all)
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveSession(session("tetris", base.Add(time.Duration(i)*time.Minute), i, 0, false)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	got, err := store.RecentSessions("tetris", 5)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Expected 5 sessions, got %d", len(got))
	}

	got, err = store.RecentSessions("tetris", 0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("Expected default limit 10, got %d", len(got))
	}
}

func TestStoreTotals(t *testing.T) {
	store := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	empty, err := store.Totals("tetris")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if empty.Sessions != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Totals() on empty = %+v, expected zero", empty)
	}

	store.SaveSession(session("tetris", base, 10, 2, true))
	store.SaveSession(session("tetris", base.Add(time.Hour), 20, 3, false))
	store.SaveSession(session("tetris_kick", base, 99, 99, true))

	tot, err := store.Totals("tetris")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if tot.Sessions != 2 || tot.Pieces != 30 || tot.Rows != 5 || tot.Finished != 1 {
		t.Errorf("Totals() = %+v, expected 2 sessions 30 pieces 5 rows 1 finished", tot)
	}
	if !tot.LastPlayed.Equal(base.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v, expected %v", tot.LastPlayed, base.Add(time.Hour))
	}

	all, err := store.Totals("")
	if err != nil {
		t.Fatalf("Totals(\"\") failed: %v", err)
	}
	if all.Sessions != 3 || all.Pieces != 129 {
		t.Errorf("Totals(\"\") = %+v, expected 3 sessions 129 pieces", all)
	}
}

func TestStoreRejectsInvalidSession(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	if _, err := store.SaveSession(Session{StartedAt: now, EndedAt: now}); err == nil {
		t.Error("SaveSession() without game id succeeded, expected error")
	}
	if _, err := store.SaveSession(Session{GameID: "tetris", StartedAt: now, EndedAt: now.Add(-time.Second)}); err == nil {
		t.Error("SaveSession() with negative duration succeeded, expected error")
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)
	store.SaveSession(session("tetris", base, 1, 0, false))
	store.SaveSession(session("tetris_kick", base, 1, 0, false))

	if err := store.ClearSessions("tetris"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	got, _ := store.RecentSessions("", 10)
	if len(got) != 1 || got[0].GameID != "tetris_kick" {
		t.Errorf("after ClearSessions() = %+v, expected only tetris_kick", got)
	}

	if err := store.ClearSessions(""); err != nil {
		t.Fatalf("ClearSessions(\"\") failed: %v", err)
	}
	if got, _ := store.RecentSessions("", 10); len(got) != 0 {
		t.Errorf("after ClearSessions(\"\") = %+v, expected none", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

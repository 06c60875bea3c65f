// Package storage provides SQLite-based persistence for play history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for play history.
type Store struct {
	db *sql.DB
}

// Session is one recorded play session.
type Session struct {
	ID        int64
	GameID    string
	Frontend  string // "terminal" or "window"
	StartedAt time.Time
	EndedAt   time.Time
	Pieces    int
	Rows      int
	Finished  bool // reached game over rather than quitting mid-game
}

// Duration returns how long the session lasted.
func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Totals aggregates every session of one game.
type Totals struct {
	GameID     string
	Sessions   int
	Pieces     int64
	Rows       int64
	Finished   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are stored as Unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			frontend TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			pieces INTEGER NOT NULL DEFAULT 0,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and returns its ID.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.GameID == "" {
		return 0, fmt.Errorf("storage: session without game id")
	}
	if sess.EndedAt.Before(sess.StartedAt) {
		return 0, fmt.Errorf("storage: session ends before it starts")
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, frontend, started_at, ended_at, pieces, rows_cleared, finished)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.GameID, sess.Frontend,
		sess.StartedAt.UnixMilli(), sess.EndedAt.UnixMilli(),
		sess.Pieces, sess.Rows, sess.Finished,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions returns the latest sessions, newest first.
// An empty gameID matches every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, frontend, started_at, ended_at, pieces, rows_cleared, finished
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess           Session
			started, ended int64
		)
		if err := rows.Scan(&sess.ID, &sess.GameID, &sess.Frontend,
			&started, &ended, &sess.Pieces, &sess.Rows, &sess.Finished); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = time.UnixMilli(started)
		sess.EndedAt = time.UnixMilli(ended)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Totals aggregates the history of one game, or of every game when gameID
// is empty.
func (s *Store) Totals(gameID string) (*Totals, error) {
	t := &Totals{GameID: gameID}

	var last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(pieces), 0), COALESCE(SUM(rows_cleared), 0),
		        COALESCE(SUM(finished), 0), MAX(started_at)
		 FROM sessions WHERE (? = '' OR game_id = ?)`,
		gameID, gameID,
	).Scan(&t.Sessions, &t.Pieces, &t.Rows, &t.Finished, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}

	if last.Valid {
		t.LastPlayed = time.UnixMilli(last.Int64)
	}

	return t, nil
}

// ClearSessions deletes the history of one game, or all history when gameID
// is empty.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE (? = '' OR game_id = ?)", gameID, gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

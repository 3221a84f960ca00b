// Package storage provides SQLite-based persistence for best scores and
// finished-game history. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-pairs/internal/pairs"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// BestEntry is the best score on record for one difficulty.
type BestEntry struct {
	Difficulty string // persistence key, e.g. "4x4"
	Moves      int
	Seconds    int
	UpdatedAt  time.Time
}

// ResultEntry is one finished game.
type ResultEntry struct {
	ID         int64
	Difficulty string
	Moves      int
	Seconds    int
	CreatedAt  time.Time
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			difficulty TEXT PRIMARY KEY,
			moves INTEGER NOT NULL,
			seconds INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			moves INTEGER NOT NULL,
			seconds INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_difficulty ON results(difficulty);
		CREATE INDEX IF NOT EXISTS idx_results_recent ON results(created_at DESC);
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

// GetBest returns the lowest recorded move count for the difficulty key.
// ok is false when no record exists.
func (s *Store) GetBest(key string) (int, bool, error) {
	var moves int
	err := s.db.QueryRow(
		"SELECT moves FROM best_scores WHERE difficulty = ?",
		key,
	).Scan(&moves)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	return moves, true, nil
}

// SetBest records a new best move count for the difficulty key.
func (s *Store) SetBest(key string, moves int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (difficulty, moves, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(difficulty) DO UPDATE SET
		   moves = excluded.moves,
		   updated_at = CURRENT_TIMESTAMP`,
		key, moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// SetBestTime updates the seconds column for a difficulty's best record.
// No-op when the record is absent.
func (s *Store) SetBestTime(key string, seconds int) error {
	_, err := s.db.Exec(
		"UPDATE best_scores SET seconds = ? WHERE difficulty = ?",
		seconds, key,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best time: %w", err)
	}
	return nil
}

// AllBests returns every best-score record, sorted by difficulty key.
func (s *Store) AllBests() ([]BestEntry, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, moves, seconds, updated_at
		 FROM best_scores
		 ORDER BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.Difficulty, &e.Moves, &e.Seconds, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SaveResult records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveResult(difficulty string, moves, seconds int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO results (difficulty, moves, seconds) VALUES (?, ?, ?)",
		difficulty, moves, seconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the most recent finished games across all
// difficulties.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, moves, seconds, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Difficulty, &e.Moves, &e.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// TopResults retrieves the best finished games for one difficulty,
// ordered by fewest moves, then fastest time.
func (s *Store) TopResults(difficulty string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, moves, seconds, created_at
		 FROM results
		 WHERE difficulty = ?
		 ORDER BY moves ASC, seconds ASC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Difficulty, &e.Moves, &e.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearResults deletes the history for one difficulty.
func (s *Store) ClearResults(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store satisfies the engine's persistence collaborator.
var _ pairs.BestStore = (*Store)(nil)

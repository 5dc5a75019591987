// Package storage provides SQLite-based persistence for the leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/cupid-arrow/internal/ranking"
)

// Store manages the SQLite database connection for ranking persistence.
// Entries pushed out of the top list are archived, never deleted.
type Store struct {
	db *sql.DB
}

// Ensure Store can back a ranking.Manager and the rankings API.
var _ ranking.Store = (*Store)(nil)

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
	// One writer at a time; SSH and web sessions submit concurrently.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS rankings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rankings_top ON rankings(archived, score DESC);
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

// Submit records a new entry, then archives everything beyond the top
// ranking.MaxEntries. Both happen in one transaction.
func (s *Store) Submit(ctx context.Context, e ranking.Entry) error {
	level := e.Level
	if level <= 0 {
		level = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO rankings (name, score, level) VALUES (?, ?, ?)",
		e.Name, e.Score, level,
	); err != nil {
		return fmt.Errorf("storage: cannot save ranking: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rankings SET archived = 1
		 WHERE archived = 0 AND id NOT IN (
			SELECT id FROM rankings
			WHERE archived = 0
			ORDER BY score DESC, id ASC
			LIMIT ?
		 )`,
		ranking.MaxEntries,
	); err != nil {
		return fmt.Errorf("storage: cannot prune rankings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit ranking: %w", err)
	}
	return nil
}

// Top retrieves up to limit active entries ordered by score descending.
// Equal scores keep submission order.
func (s *Store) Top(ctx context.Context, limit int) ([]ranking.Entry, error) {
	if limit <= 0 {
		limit = ranking.MaxEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, level, created_at
		 FROM rankings
		 WHERE archived = 0
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rankings: %w", err)
	}
	defer rows.Close()

	var entries []ranking.Entry
	for rows.Next() {
		var e ranking.Entry
		var createdAt any
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats contains aggregated statistics over every submission, archived or not.
type Stats struct {
	Submissions int
	Archived    int
	HighScore   int
	AvgScore    float64
	LastPlayed  time.Time
}

// Stats retrieves aggregated leaderboard statistics.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(archived), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM rankings`,
	).Scan(&stats.Submissions, &stats.Archived, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM rankings ORDER BY id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Clear deletes all entries, archived ones included.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM rankings"); err != nil {
		return fmt.Errorf("storage: cannot clear rankings: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
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

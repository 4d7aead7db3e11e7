/*
Package sqlite provides a SQLite-backed season.HistoryStore.

PURPOSE:
  Stores committed matches in a SQLite database instead of a Go slice.
  The default DSN is ":memory:", so the history lives exactly as long as
  the process, like every other piece of season state.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the matches table
  - No DELETE statements on the matches table
  - A record ID can only be inserted once (PRIMARY KEY)

ORDERING:
  Every insert takes the next value of the seq column. List reads
  ORDER BY seq DESC, which is the newest-first order of the history.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The pool is capped at one
  connection because each ":memory:" connection is a separate database.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      return err
  }
  defer store.Close()

  tracker := season.NewTracker(store, season.Options{})

SEE ALSO:
  - season/history.go: HistoryStore contract
  - season/store/memory.go: Slice-backed implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/matchday/season"
)

// Store implements season.HistoryStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ season.HistoryStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Committed matches (append-only)
	CREATE TABLE IF NOT EXISTS matches (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		home_name TEXT NOT NULL,
		away_name TEXT NOT NULL,
		home_score INTEGER NOT NULL CHECK (home_score >= 0),
		away_score INTEGER NOT NULL CHECK (away_score >= 0),
		committed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_matches_home ON matches(home_name);
	CREATE INDEX IF NOT EXISTS idx_matches_away ON matches(away_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HISTORY STORE (season.HistoryStore interface)
// =============================================================================

// Append stores rec as the newest match.
func (s *Store) Append(ctx context.Context, rec season.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO matches (id, home_name, away_name, home_score, away_score, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.HomeName,
		rec.AwayName,
		rec.HomeScore,
		rec.AwayScore,
		rec.CommittedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return season.ErrDuplicateMatchID
		}
		return fmt.Errorf("failed to append match: %w", err)
	}
	return nil
}

// List returns every match, newest first.
func (s *Store) List(ctx context.Context) ([]season.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, home_name, away_name, home_score, away_score, committed_at
		FROM matches
		ORDER BY seq DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	records := []season.MatchRecord{}
	for rows.Next() {
		var (
			rec         season.MatchRecord
			committedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.HomeName, &rec.AwayName,
			&rec.HomeScore, &rec.AwayScore, &committedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		rec.CommittedAt, err = time.Parse(time.RFC3339Nano, committedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse committed_at %q: %w", committedAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Helper functions

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

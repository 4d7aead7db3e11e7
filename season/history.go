/*
history.go - Append-only log of committed matches

PURPOSE:
  Keeps every committed MatchRecord for the lifetime of the process,
  newest first. The log is backed by a HistoryStore so the host can pick
  an implementation (plain memory, or an in-memory SQLite database).

APPEND-ONLY CONTRACT:
  - Append(): the ONLY write operation, adds a record in front
  - NO Update() or Delete() methods exist
  - Reads return copies; callers cannot disturb stored records

IMPLEMENTATIONS:
  - season/store/memory.go: slice-backed
  - store/sqlite/sqlite.go: database/sql + go-sqlite3

SEE ALSO:
  - tracker.go: CommitMatch is the only caller of Append
*/
package season

import (
	"context"
	"fmt"
)

// HistoryStore persists committed matches. Append-only.
type HistoryStore interface {
	// Append stores rec as the newest record.
	Append(ctx context.Context, rec MatchRecord) error

	// List returns every record, newest first.
	List(ctx context.Context) ([]MatchRecord, error)
}

// History is the committed match log.
type History struct {
	store HistoryStore
}

func NewHistory(store HistoryStore) *History {
	return &History{store: store}
}

// Append adds rec in front of the log.
func (h *History) Append(ctx context.Context, rec MatchRecord) error {
	if err := h.store.Append(ctx, rec); err != nil {
		return fmt.Errorf("append match %s: %w", rec.ID, err)
	}
	return nil
}

// RankedView returns the log in its stored newest-first order.
func (h *History) RankedView(ctx context.Context) ([]MatchRecord, error) {
	records, err := h.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches: %v", ErrStoreFailure, err)
	}
	if records == nil {
		records = []MatchRecord{}
	}
	return records, nil
}

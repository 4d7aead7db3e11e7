// Package store provides HistoryStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/matchday/season"
)

// =============================================================================
// MEMORY STORE - Slice-backed history (default)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records []season.MatchRecord // newest-first
	ids     map[string]bool
}

var _ season.HistoryStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{ids: make(map[string]bool)}
}

// Append adds rec in front. Append-only.
func (m *Memory) Append(_ context.Context, rec season.MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(rec)
}

func (m *Memory) appendLocked(rec season.MatchRecord) error {
	if rec.ID != "" && m.ids[rec.ID] {
		return season.ErrDuplicateMatchID
	}
	m.records = append([]season.MatchRecord{rec}, m.records...)
	if rec.ID != "" {
		m.ids[rec.ID] = true
	}
	return nil
}

// List returns a copy of every record, newest first.
func (m *Memory) List(_ context.Context) ([]season.MatchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]season.MatchRecord, len(m.records))
	copy(result, m.records)
	return result, nil
}

package season

import "sort"

// StatKind selects one of the two player boards.
type StatKind int

const (
	KindScorer StatKind = iota
	KindAssist
)

func (k StatKind) String() string {
	if k == KindAssist {
		return "assist"
	}
	return "scorer"
}

// PlayerStat is one player's season totals.
type PlayerStat struct {
	Name    string
	Goals   int
	Assists int
}

// PlayerTally is one row of a ranked board.
type PlayerTally struct {
	Name  string
	Count int
}

// =============================================================================
// PLAYER LEDGER
// =============================================================================

// PlayerLedger counts goals and assists per player name for the whole season.
// Names failing the NamePolicy are never credited and are purged before
// every read, so a tightened policy also cleans up older entries.
type PlayerLedger struct {
	policy  NamePolicy
	entries map[string]*PlayerStat
	// first-credit order per board, used to break ties
	order map[StatKind][]string
}

func NewPlayerLedger(policy NamePolicy) *PlayerLedger {
	return &PlayerLedger{
		policy:  policy,
		entries: make(map[string]*PlayerStat),
		order:   make(map[StatKind][]string),
	}
}

// Credit adds one goal or assist to name. Returns false for invalid names.
func (l *PlayerLedger) Credit(kind StatKind, name string) bool {
	name = l.policy.Clean(name)
	if name == "" {
		return false
	}

	entry, ok := l.entries[name]
	if !ok {
		entry = &PlayerStat{Name: name}
		l.entries[name] = entry
	}
	if count(entry, kind) == 0 {
		l.order[kind] = append(l.order[kind], name)
	}

	switch kind {
	case KindAssist:
		entry.Assists++
	default:
		entry.Goals++
	}
	return true
}

func (l *PlayerLedger) clone() *PlayerLedger {
	c := NewPlayerLedger(l.policy)
	for name, entry := range l.entries {
		stat := *entry
		c.entries[name] = &stat
	}
	for kind, names := range l.order {
		c.order[kind] = append([]string(nil), names...)
	}
	return c
}

// Purge drops every entry whose name fails the current policy.
func (l *PlayerLedger) Purge() {
	for name := range l.entries {
		if !l.policy.Valid(name) {
			delete(l.entries, name)
		}
	}
	for kind, names := range l.order {
		kept := names[:0]
		for _, name := range names {
			if _, ok := l.entries[name]; ok {
				kept = append(kept, name)
			}
		}
		l.order[kind] = kept
	}
}

// Stat returns the totals for one player.
func (l *PlayerLedger) Stat(name string) (PlayerStat, bool) {
	l.Purge()
	entry, ok := l.entries[l.policy.Clean(name)]
	if !ok {
		return PlayerStat{}, false
	}
	return *entry, true
}

// RankedView returns the board for kind: count descending, ties in
// first-credited order. Players with no credit of that kind are omitted.
func (l *PlayerLedger) RankedView(kind StatKind) []PlayerTally {
	l.Purge()

	board := make([]PlayerTally, 0, len(l.order[kind]))
	for _, name := range l.order[kind] {
		board = append(board, PlayerTally{Name: name, Count: count(l.entries[name], kind)})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Count > board[j].Count
	})
	return board
}

func count(entry *PlayerStat, kind StatKind) int {
	if kind == KindAssist {
		return entry.Assists
	}
	return entry.Goals
}

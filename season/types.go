/*
Package season provides the live match and season standings engine.

PURPOSE:
  Tracks one team's amateur season. A live match session counts goals as
  they happen, and each goal with a valid scorer credits the season-long
  scorer/assist boards right away. Committing the session folds the
  result into the match history and the team standings table; neither
  commit nor reset touches the player boards.

KEY CONCEPTS IN THIS FILE (types.go):
  - Side: Home or Away within the live match
  - GoalEvent: An immutable entry of the live goal log
  - MatchRecord: An immutable committed match summary
  - Scores: Running score pair of the live session

DESIGN PRINCIPLES:
  1. Explicit ownership: the host owns a Tracker, there are no globals
  2. Permissive input: blank names are coerced to defaults, never rejected
  3. Silent preconditions: a goal without a side or a meaningless commit
     is a no-op, not an error
  4. Deterministic reads: every ranked view has a total, stable order

SEE ALSO:
  - session.go: Live match session
  - players.go: Player statistics ledger
  - standings.go: Team standings table
  - history.go: Committed match history
  - tracker.go: Command/query API and commit orchestration
*/
package season

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// SIDE
// =============================================================================

// Side designates a team within the live match.
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
)

func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	default:
		return ""
	}
}

// Valid reports whether s designates an actual team.
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// ParseSide converts an API value into a Side. An empty string is SideNone,
// which commands treat as a silent no-op.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SideNone, nil
	case "home":
		return SideHome, nil
	case "away":
		return SideAway, nil
	default:
		return SideNone, fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// Scores is the running score of the live session.
type Scores struct {
	Home int
	Away int
}

// =============================================================================
// GOAL EVENT
// =============================================================================

// GoalEvent is one entry of the live goal log.
// Immutable once recorded; discarded when the session resets or commits.
type GoalEvent struct {
	ID         string
	Side       Side
	Scorer     string
	Assist     string // empty when no valid assist was given
	TeamName   string // scoring team's name at the time of the goal
	RecordedAt time.Time
}

// Label renders the entry the way the goal log displays it,
// e.g. "Martin (Passe de Dupont) (Asnières)".
func (g GoalEvent) Label() string {
	label := g.Scorer
	if g.Assist != "" {
		label += fmt.Sprintf(" (Passe de %s)", g.Assist)
	}
	return label + fmt.Sprintf(" (%s)", g.TeamName)
}

// =============================================================================
// MATCH RECORD
// =============================================================================

// MatchRecord is a committed match summary. Immutable once appended.
type MatchRecord struct {
	ID          string
	HomeName    string
	AwayName    string
	HomeScore   int
	AwayScore   int
	CommittedAt time.Time
}

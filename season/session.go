/*
session.go - Live, uncommitted match state

PURPOSE:
  Holds the two team identities, the running scores, the newest-first goal
  log and the side of a goal the operator has started to enter but not yet
  confirmed.

INVARIANTS:
  - Scores never go below zero; they only grow until Reset
  - The goal log is newest-first and never reordered
  - Team identities survive Reset; only Rename changes them
  - Team names are never blank (defaults are substituted)

SEE ALSO:
  - tracker.go: Records goals against the session and commits it
*/
package season

// Session is the live match. It is not safe for concurrent use;
// Loop serializes access to it.
type Session struct {
	homeName  string
	awayName  string
	homeScore int
	awayScore int
	goals     []GoalEvent // newest-first
	pending   Side
}

// NewSession creates an empty session. Blank names fall back to the defaults.
func NewSession(homeName, awayName string) *Session {
	return &Session{
		homeName: teamName(homeName, DefaultHomeName),
		awayName: teamName(awayName, DefaultAwayName),
	}
}

// Name returns the current identity of a side.
func (s *Session) Name(side Side) string {
	if side == SideAway {
		return s.awayName
	}
	return s.homeName
}

// Rename changes a side's identity. Returns false when nothing changed.
func (s *Session) Rename(side Side, name string) bool {
	if !side.Valid() {
		return false
	}
	name = teamName(name, defaultTeamName(side))
	target := &s.homeName
	if side == SideAway {
		target = &s.awayName
	}
	if *target == name {
		return false
	}
	*target = name
	return true
}

// Scores returns the running score.
func (s *Session) Scores() Scores {
	return Scores{Home: s.homeScore, Away: s.awayScore}
}

// Goals returns a copy of the goal log, newest-first.
func (s *Session) Goals() []GoalEvent {
	out := make([]GoalEvent, len(s.goals))
	copy(out, s.goals)
	return out
}

// Pending returns the side of the goal awaiting confirmation, if any.
func (s *Session) Pending() Side {
	return s.pending
}

// Reset zeroes the scores, clears the goal log and drops any pending goal.
func (s *Session) Reset() {
	s.homeScore = 0
	s.awayScore = 0
	s.goals = nil
	s.pending = SideNone
}

func (s *Session) score(side Side) {
	if side == SideAway {
		s.awayScore++
		return
	}
	s.homeScore++
}

func (s *Session) prepend(ev GoalEvent) {
	s.goals = append([]GoalEvent{ev}, s.goals...)
}

func (s *Session) clone() *Session {
	c := *s
	c.goals = s.Goals()
	return &c
}

func (s *Session) snapshot(id string) MatchRecord {
	return MatchRecord{
		ID:        id,
		HomeName:  s.homeName,
		AwayName:  s.awayName,
		HomeScore: s.homeScore,
		AwayScore: s.awayScore,
	}
}

/*
standings.go - Season-long team standings table

PURPOSE:
  Accumulates one row per team name from committed results and ranks the
  rows deterministically.

SCORING:
  Win 3 points, draw 1, loss 0. Both teams of a result are updated.

RANKING:
  1. Points        (desc)
  2. Goal diff     (desc)
  3. Goals for     (desc)
  4. Played        (asc, fewer games ranks higher)
  5. First appearance in the table

INVARIANTS:
  - Diff == GoalsFor - GoalsAgainst for every row
  - Points == 3*Won + Drawn for every row
  - Rows are keyed by the literal team name and never deleted, so a
    renamed team starts a fresh row
*/
package season

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TeamStanding is one team's cumulative record.
type TeamStanding struct {
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	Points       int
	GoalsFor     int
	GoalsAgainst int
	Diff         int
}

// PointsPerGame returns Points/Played rounded to two places, zero before
// the first game.
func (t TeamStanding) PointsPerGame() decimal.Decimal {
	if t.Played == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(t.Points)).
		DivRound(decimal.NewFromInt(int64(t.Played)), 2)
}

// WinRate returns Won/Played rounded to three places.
func (t TeamStanding) WinRate() decimal.Decimal {
	if t.Played == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(t.Won)).
		DivRound(decimal.NewFromInt(int64(t.Played)), 3)
}

func (t *TeamStanding) record(scored, conceded int) {
	t.Played++
	switch {
	case scored > conceded:
		t.Won++
		t.Points += 3
	case scored == conceded:
		t.Drawn++
		t.Points++
	default:
		t.Lost++
	}
	t.GoalsFor += scored
	t.GoalsAgainst += conceded
	t.Diff = t.GoalsFor - t.GoalsAgainst
}

// RanksAbove reports whether a is placed strictly before b by the ranking
// criteria. Rows equal on every criterion keep their existing order.
func RanksAbove(a, b TeamStanding) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Diff != b.Diff {
		return a.Diff > b.Diff
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.Played < b.Played
}

// Rank sorts rows in place by RanksAbove, keeping the input order for full ties.
func Rank(rows []TeamStanding) {
	sort.SliceStable(rows, func(i, j int) bool {
		return RanksAbove(rows[i], rows[j])
	})
}

// =============================================================================
// STANDINGS TABLE
// =============================================================================

// Standings is the season table.
type Standings struct {
	rows  map[string]*TeamStanding
	order []string // insertion order
}

func NewStandings() *Standings {
	return &Standings{rows: make(map[string]*TeamStanding)}
}

// ApplyResult folds one match into both teams' rows, creating them on first reference.
func (s *Standings) ApplyResult(homeName, awayName string, homeScore, awayScore int) {
	s.row(homeName).record(homeScore, awayScore)
	s.row(awayName).record(awayScore, homeScore)
}

func (s *Standings) row(team string) *TeamStanding {
	r, ok := s.rows[team]
	if !ok {
		r = &TeamStanding{Team: team}
		s.rows[team] = r
		s.order = append(s.order, team)
	}
	return r
}

// RankedView returns a ranked copy of the table.
func (s *Standings) RankedView() []TeamStanding {
	rows := make([]TeamStanding, len(s.order))
	for i, team := range s.order {
		rows[i] = *s.rows[team]
	}
	Rank(rows)
	return rows
}

package season_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/matchday/season"
)

func TestApplyResult_WinDrawLoss(t *testing.T) {
	s := season.NewStandings()

	s.ApplyResult("Asnières", "Lyon", 2, 1)
	s.ApplyResult("Lyon", "Asnières", 0, 0)

	rows := s.RankedView()
	require.Len(t, rows, 2)
	assert.Equal(t, season.TeamStanding{
		Team: "Asnières", Played: 2, Won: 1, Drawn: 1, Points: 4, GoalsFor: 2, GoalsAgainst: 1, Diff: 1,
	}, rows[0])
	assert.Equal(t, season.TeamStanding{
		Team: "Lyon", Played: 2, Drawn: 1, Lost: 1, Points: 1, GoalsFor: 1, GoalsAgainst: 2, Diff: -1,
	}, rows[1])
}

func TestApplyResult_RowInvariants(t *testing.T) {
	s := season.NewStandings()
	results := []struct {
		home, away string
		hs, as     int
	}{
		{"A", "B", 3, 1}, {"B", "C", 2, 2}, {"C", "A", 4, 0}, {"A", "C", 1, 1}, {"B", "A", 0, 5},
	}
	for _, r := range results {
		s.ApplyResult(r.home, r.away, r.hs, r.as)
	}

	for _, row := range s.RankedView() {
		assert.Equal(t, row.GoalsFor-row.GoalsAgainst, row.Diff, row.Team)
		assert.Equal(t, 3*row.Won+row.Drawn, row.Points, row.Team)
		assert.Equal(t, row.Won+row.Drawn+row.Lost, row.Played, row.Team)
	}
}

func TestRank_DiffBreaksPointTies(t *testing.T) {
	a := season.TeamStanding{Team: "A", Points: 3, Diff: 5}
	b := season.TeamStanding{Team: "B", Points: 3, Diff: 2}

	assert.True(t, season.RanksAbove(a, b))
	assert.False(t, season.RanksAbove(b, a))

	rows := []season.TeamStanding{b, a}
	season.Rank(rows)
	assert.Equal(t, "A", rows[0].Team)
}

func TestRank_FewerGamesPlayedRanksHigher(t *testing.T) {
	// GIVEN: equal points, diff and goals for
	a := season.TeamStanding{Team: "A", Points: 3, Diff: 0, GoalsFor: 2, Played: 2}
	b := season.TeamStanding{Team: "B", Points: 3, Diff: 0, GoalsFor: 2, Played: 1}

	// WHEN: ranking
	rows := []season.TeamStanding{a, b}
	season.Rank(rows)

	// THEN: B played fewer games
	assert.Equal(t, []string{"B", "A"}, []string{rows[0].Team, rows[1].Team})
}

func TestRank_GoalsForBreaksDiffTies(t *testing.T) {
	rows := []season.TeamStanding{
		{Team: "A", Points: 4, Diff: 1, GoalsFor: 3},
		{Team: "B", Points: 4, Diff: 1, GoalsFor: 6},
	}
	season.Rank(rows)
	assert.Equal(t, "B", rows[0].Team)
}

func TestRankedView_FullTiesKeepFirstAppearance(t *testing.T) {
	s := season.NewStandings()
	s.ApplyResult("Gennevilliers", "Colombes", 1, 1)

	rows := s.RankedView()
	require.Len(t, rows, 2)
	assert.Equal(t, "Gennevilliers", rows[0].Team)
	assert.Equal(t, "Colombes", rows[1].Team)

	// repeated reads are identical
	assert.Equal(t, rows, s.RankedView())
}

func TestRankedView_ReturnsCopies(t *testing.T) {
	s := season.NewStandings()
	s.ApplyResult("A", "B", 1, 0)

	rows := s.RankedView()
	rows[0].Points = 99

	assert.Equal(t, 3, s.RankedView()[0].Points)
}

func TestPointsPerGame(t *testing.T) {
	tests := []struct {
		name      string
		row       season.TeamStanding
		wantPPG   string
		wantRatio string
	}{
		{"no games", season.TeamStanding{}, "0.00", "0.000"},
		{"two wins of three", season.TeamStanding{Played: 3, Won: 2, Points: 6}, "2.00", "0.667"},
		{"win draw loss", season.TeamStanding{Played: 3, Won: 1, Drawn: 1, Points: 4}, "1.33", "0.333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPPG, tt.row.PointsPerGame().StringFixed(2))
			assert.Equal(t, tt.wantRatio, tt.row.WinRate().StringFixed(3))
		})
	}
}

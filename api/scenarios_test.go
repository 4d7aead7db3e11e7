package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/matchday/season"
	"github.com/warp/matchday/season/store"
)

func TestListScenarios(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.request(t, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "opening-day", list[0].ID)
	assert.Equal(t, 1, list[0].Matches)
	assert.Equal(t, "autumn-series", list[1].ID)
	assert.Equal(t, 4, list[1].Matches)
}

func TestLoadScenario_AutumnSeries(t *testing.T) {
	// GIVEN: a fresh season
	s := newTestServer(t, nil)

	// WHEN: loading the autumn series
	rec := s.request(t, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "autumn-series"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 4, decode[ScenarioDTO](t, rec).Matches)

	// THEN: the standings reflect four matches
	standings := decode[[]StandingDTO](t, s.request(t, http.MethodGet, "/api/standings", nil))
	require.Len(t, standings, 5)
	teams := make([]string, len(standings))
	for i, row := range standings {
		teams[i] = row.Team
	}
	assert.Equal(t, []string{"Asnières", "Courbevoie", "Gennevilliers", "Colombes", "Colombes FC"}, teams)

	asn := standings[0]
	assert.Equal(t, 4, asn.Played)
	assert.Equal(t, 2, asn.Won)
	assert.Equal(t, 1, asn.Drawn)
	assert.Equal(t, 1, asn.Lost)
	assert.Equal(t, 7, asn.Points)
	assert.Equal(t, 6, asn.GoalsFor)
	assert.Equal(t, 4, asn.GoalsAgainst)
	assert.Equal(t, "+2", asn.DiffDisplay)
	assert.Equal(t, "1.75", asn.PointsPerGame)

	// AND: the player boards skip unnamed and placeholder scorers
	scorers := decode[[]PlayerTallyDTO](t, s.request(t, http.MethodGet, "/api/players/scorers", nil))
	assert.Equal(t, []PlayerTallyDTO{
		{Rank: 1, Name: "Martin", Count: 3},
		{Rank: 2, Name: "Petit", Count: 2},
		{Rank: 3, Name: "Leroy", Count: 1},
		{Rank: 4, Name: "Dupont", Count: 1},
		{Rank: 5, Name: "Bernard", Count: 1},
	}, scorers)

	assists := decode[[]PlayerTallyDTO](t, s.request(t, http.MethodGet, "/api/players/assists", nil))
	assert.Equal(t, []PlayerTallyDTO{
		{Rank: 1, Name: "Dupont", Count: 2},
		{Rank: 2, Name: "Bernard", Count: 1},
		{Rank: 3, Name: "Roux", Count: 1},
		{Rank: 4, Name: "Martin", Count: 1},
	}, assists)

	// AND: history is newest first
	history := decode[[]MatchRecordDTO](t, s.request(t, http.MethodGet, "/api/history", nil))
	require.Len(t, history, 4)
	assert.Equal(t, "Colombes FC", history[0].AwayName)
	assert.Equal(t, "Colombes", history[3].AwayName)

	// AND: the live match is untouched, team names restored
	match := decode[MatchDTO](t, s.request(t, http.MethodGet, "/api/match", nil))
	assert.Equal(t, "Asnières", match.Home.Name)
	assert.Equal(t, "Lyon", match.Away.Name)
	assert.Equal(t, 0, match.Home.Score)
	assert.Empty(t, match.Goals)
}

func TestLoadScenario_RefusedDuringMatch(t *testing.T) {
	s := newTestServer(t, nil)
	s.goal(t, "home", "Martin", "")

	rec := s.request(t, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "opening-day"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	history := decode[[]MatchRecordDTO](t, s.request(t, http.MethodGet, "/api/history", nil))
	assert.Empty(t, history)
	scores := decode[ScoresDTO](t, s.request(t, http.MethodGet, "/api/match/scores", nil))
	assert.Equal(t, ScoresDTO{Home: 1}, scores)
}

func TestLoadScenario_Unknown(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.request(t, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "world-cup"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(t, http.MethodPost, "/api/scenarios/load", "nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// flakyStore accepts a fixed number of appends, then fails.
type flakyStore struct {
	*store.Memory
	allowed int
}

func (f *flakyStore) Append(ctx context.Context, rec season.MatchRecord) error {
	if f.allowed == 0 {
		return errors.New("disk full")
	}
	f.allowed--
	return f.Memory.Append(ctx, rec)
}

func TestLoadScenario_FailedCommitRollsBackThatMatch(t *testing.T) {
	// GIVEN: a store that fails on the second append
	s := newTestServer(t, &flakyStore{Memory: store.NewMemory(), allowed: 1})

	// WHEN: loading a four-match scenario
	rec := s.request(t, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "autumn-series"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// THEN: the live match shows none of the scripted goals
	match := decode[MatchDTO](t, s.request(t, http.MethodGet, "/api/match", nil))
	assert.Equal(t, TeamScoreDTO{Side: "home", Name: "Asnières", Score: 0}, match.Home)
	assert.Equal(t, TeamScoreDTO{Side: "away", Name: "Lyon", Score: 0}, match.Away)
	assert.Empty(t, match.Goals)

	// AND: only the first, committed match reached the season
	history := decode[[]MatchRecordDTO](t, s.request(t, http.MethodGet, "/api/history", nil))
	require.Len(t, history, 1)
	assert.Equal(t, "Colombes", history[0].AwayName)

	standings := decode[[]StandingDTO](t, s.request(t, http.MethodGet, "/api/standings", nil))
	assert.Len(t, standings, 2)

	scorers := decode[[]PlayerTallyDTO](t, s.request(t, http.MethodGet, "/api/players/scorers", nil))
	assert.Equal(t, []PlayerTallyDTO{
		{Rank: 1, Name: "Martin", Count: 2},
		{Rank: 2, Name: "Leroy", Count: 1},
	}, scorers)
	assists := decode[[]PlayerTallyDTO](t, s.request(t, http.MethodGet, "/api/players/assists", nil))
	assert.Equal(t, []PlayerTallyDTO{{Rank: 1, Name: "Dupont", Count: 1}}, assists)
}

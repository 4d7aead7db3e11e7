/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Replays scripted matches through the regular command API so a fresh
  server shows a populated history, standings table and player boards.

AVAILABLE SCENARIOS:
  opening-day:   One home win with named and unnamed goals
  autumn-series: Four matches including a draw and a renamed opponent

HOW SCENARIOS WORK:
  For each scripted match:
  1. Rename both sides to the scripted teams
  2. Record every scripted goal (RecordGoal, same policy as live input)
  3. CommitMatch
  Each match runs under Tracker.Atomically: if its commit fails, the
  scripted goals and player credits of that match are rolled back.
  Matches committed before the failure stay in the season. Finally the
  team names in use before the load are restored.

  The whole replay runs as one job on the command loop, so no operator
  command can interleave with it.

USAGE VIA API:
  POST /api/scenarios/load
  {"scenario_id": "autumn-series"}

NOTE:
  Scenarios add to the season; they never remove anything. Loading is
  refused while the live match has a score, to avoid committing it.

SEE ALSO:
  - handlers.go: Command handlers used by operators
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/warp/matchday/season"
)

var (
	// ErrMatchInProgress is returned when a scenario would commit a live match.
	ErrMatchInProgress = errors.New("live match has a score; commit or reset it first")

	// ErrUnknownScenario is returned for an unknown scenario ID.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scriptedGoal struct {
	side   season.Side
	scorer string
	assist string
}

type scriptedMatch struct {
	home  string
	away  string
	goals []scriptedGoal
}

type scenario struct {
	id          string
	name        string
	description string
	matches     []scriptedMatch
}

func home(scorer, assist string) scriptedGoal {
	return scriptedGoal{side: season.SideHome, scorer: scorer, assist: assist}
}

func away(scorer, assist string) scriptedGoal {
	return scriptedGoal{side: season.SideAway, scorer: scorer, assist: assist}
}

var scenarios = []scenario{
	{
		id:          "opening-day",
		name:        "Opening Day",
		description: "Asnières beat Lyon 2-1; the away goal has no known scorer",
		matches: []scriptedMatch{
			{
				home: "Asnières",
				away: "Lyon",
				goals: []scriptedGoal{
					home("Martin", ""),
					away("Inconnu", ""),
					home("Dupont", "Martin"),
				},
			},
		},
	},
	{
		id:          "autumn-series",
		name:        "Autumn Series",
		description: "Four matches: wins, a draw, a loss and a renamed opponent",
		matches: []scriptedMatch{
			{
				home:  "Asnières",
				away:  "Colombes",
				goals: []scriptedGoal{home("Martin", "Dupont"), home("Martin", ""), away("Leroy", "")},
			},
			{
				home:  "Asnières",
				away:  "Gennevilliers",
				goals: []scriptedGoal{home("Dupont", "Bernard"), away("", "")},
			},
			{
				home:  "Asnières",
				away:  "Courbevoie",
				goals: []scriptedGoal{away("Petit", ""), away("Petit", "Roux"), home("Bernard", "Martin")},
			},
			{
				home:  "Asnières",
				away:  "Colombes FC",
				goals: []scriptedGoal{home("joueur inconnu", ""), home("Martin", "Dupont")},
			},
		},
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.id == id {
			return s, true
		}
	}
	return scenario{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{ID: s.id, Name: s.name, Description: s.description, Matches: len(s.matches)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadScenario replays a predefined scenario into the season.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sc, ok := findScenario(req.ScenarioID)
	if !ok {
		writeLoopError(w, r, fmt.Errorf("%w: %q", ErrUnknownScenario, req.ScenarioID))
		return
	}

	var committed int
	err := h.do(r.Context(), func(ctx context.Context, t *season.Tracker) error {
		var err error
		committed, err = replay(ctx, t, sc)
		return err
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}

	log.Ctx(r.Context()).Info().Str("scenario", sc.id).Int("matches", committed).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          sc.id,
		Name:        sc.name,
		Description: sc.description,
		Matches:     committed,
	})
}

// replay runs a scenario against t and returns the number of committed matches.
func replay(ctx context.Context, t *season.Tracker, sc scenario) (int, error) {
	if scores := t.CurrentScores(); scores.Home+scores.Away > 0 {
		return 0, ErrMatchInProgress
	}

	homeName, awayName := t.Teams()
	defer func() {
		t.RenameTeam(season.SideHome, homeName)
		t.RenameTeam(season.SideAway, awayName)
	}()

	t.CancelPendingGoal()
	committed := 0
	for _, m := range sc.matches {
		var ok bool
		err := t.Atomically(func() error {
			t.RenameTeam(season.SideHome, m.home)
			t.RenameTeam(season.SideAway, m.away)
			for _, g := range m.goals {
				t.RecordGoal(g.side, g.scorer, g.assist)
			}
			var err error
			_, ok, err = t.CommitMatch(ctx)
			return err
		})
		if err != nil {
			return committed, fmt.Errorf("scenario %s: %w", sc.id, err)
		}
		if ok {
			committed++
		}
	}
	return committed, nil
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the season engine's types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
  Note that blank names are not validation failures: the engine substitutes
  defaults for them.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"fmt"
	"time"

	"github.com/warp/matchday/season"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RecordGoalRequest records a goal in one step.
type RecordGoalRequest struct {
	Side   string `json:"side"`
	Scorer string `json:"scorer,omitempty"`
	Assist string `json:"assist,omitempty"`
}

// SelectSideRequest opens a pending goal.
type SelectSideRequest struct {
	Side string `json:"side"`
}

// ConfirmGoalRequest completes the pending goal.
type ConfirmGoalRequest struct {
	Scorer string `json:"scorer,omitempty"`
	Assist string `json:"assist,omitempty"`
}

// RenameTeamRequest changes a side's identity.
type RenameTeamRequest struct {
	Name string `json:"name"`
}

// LoadScenarioRequest replays a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// TeamScoreDTO is one side of the live match.
type TeamScoreDTO struct {
	Side  string `json:"side"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// MatchDTO is the full live match view.
type MatchDTO struct {
	Home        TeamScoreDTO `json:"home"`
	Away        TeamScoreDTO `json:"away"`
	PendingSide string       `json:"pending_side,omitempty"`
	Goals       []GoalDTO    `json:"goals"`
}

// ScoresDTO is the running score.
type ScoresDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GoalDTO is one goal log entry.
type GoalDTO struct {
	ID         string `json:"id"`
	Side       string `json:"side"`
	Scorer     string `json:"scorer"`
	Assist     string `json:"assist,omitempty"`
	Team       string `json:"team"`
	Label      string `json:"label"`
	Time       string `json:"time"`
	RecordedAt string `json:"recorded_at"`
}

// RecordGoalDTO reports the effect of a goal command.
type RecordGoalDTO struct {
	Scores ScoresDTO `json:"scores"`
	Goal   *GoalDTO  `json:"goal,omitempty"`
}

// MatchRecordDTO is one committed match.
type MatchRecordDTO struct {
	ID          string `json:"id"`
	HomeName    string `json:"home_name"`
	AwayName    string `json:"away_name"`
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
	CommittedAt string `json:"committed_at"`
}

// StandingDTO is one row of the standings table.
type StandingDTO struct {
	Rank          int    `json:"rank"`
	Team          string `json:"team"`
	Played        int    `json:"played"`
	Won           int    `json:"won"`
	Drawn         int    `json:"drawn"`
	Lost          int    `json:"lost"`
	Points        int    `json:"points"`
	GoalsFor      int    `json:"goals_for"`
	GoalsAgainst  int    `json:"goals_against"`
	Diff          int    `json:"diff"`
	DiffDisplay   string `json:"diff_display"`
	PointsPerGame string `json:"points_per_game"`
	WinRate       string `json:"win_rate"`
}

// PlayerTallyDTO is one row of a scorer or assist board.
type PlayerTallyDTO struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Matches     int    `json:"matches"`
}

// HealthDTO is the health check response.
type HealthDTO struct {
	Status  string `json:"status"`
	Clients int    `json:"clients"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toGoalDTO(g season.GoalEvent) GoalDTO {
	return GoalDTO{
		ID:         g.ID,
		Side:       g.Side.String(),
		Scorer:     g.Scorer,
		Assist:     g.Assist,
		Team:       g.TeamName,
		Label:      g.Label(),
		Time:       g.RecordedAt.Format("15:04"),
		RecordedAt: g.RecordedAt.Format(time.RFC3339),
	}
}

func toGoalDTOs(goals []season.GoalEvent) []GoalDTO {
	dtos := make([]GoalDTO, len(goals))
	for i, g := range goals {
		dtos[i] = toGoalDTO(g)
	}
	return dtos
}

func toMatchRecordDTO(m season.MatchRecord) MatchRecordDTO {
	return MatchRecordDTO{
		ID:          m.ID,
		HomeName:    m.HomeName,
		AwayName:    m.AwayName,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		CommittedAt: m.CommittedAt.Format(time.RFC3339),
	}
}

func toStandingDTOs(rows []season.TeamStanding) []StandingDTO {
	dtos := make([]StandingDTO, len(rows))
	for i, r := range rows {
		dtos[i] = StandingDTO{
			Rank:          i + 1,
			Team:          r.Team,
			Played:        r.Played,
			Won:           r.Won,
			Drawn:         r.Drawn,
			Lost:          r.Lost,
			Points:        r.Points,
			GoalsFor:      r.GoalsFor,
			GoalsAgainst:  r.GoalsAgainst,
			Diff:          r.Diff,
			DiffDisplay:   signed(r.Diff),
			PointsPerGame: r.PointsPerGame().StringFixed(2),
			WinRate:       r.WinRate().StringFixed(3),
		}
	}
	return dtos
}

func toPlayerTallyDTOs(board []season.PlayerTally) []PlayerTallyDTO {
	dtos := make([]PlayerTallyDTO, len(board))
	for i, p := range board {
		dtos[i] = PlayerTallyDTO{Rank: i + 1, Name: p.Name, Count: p.Count}
	}
	return dtos
}

// signed renders a goal difference with an explicit plus sign, "+0" included.
func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

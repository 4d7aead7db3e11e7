/*
handlers.go - HTTP API handlers for the match tracker

PURPOSE:
  Exposes the season engine's command and query API over REST. Handles
  HTTP request/response and JSON serialization, and runs every engine call
  through the season.Loop so commands are applied strictly one at a time.

ENDPOINTS:
  Live match:
    GET    /api/match                  Full live view (teams, scores, goals)
    GET    /api/match/scores           Running score
    GET    /api/match/goals            Goal log, newest first
    POST   /api/match/goals            Record a goal in one step
    POST   /api/match/pending          Open a pending goal for a side
    POST   /api/match/pending/confirm  Record the pending goal
    DELETE /api/match/pending          Cancel the pending goal
    PUT    /api/match/teams/{side}     Rename a side
    POST   /api/match/reset            Zero the live match
    POST   /api/match/commit           Commit into history and standings

  Season:
    GET    /api/history                Committed matches, newest first
    GET    /api/standings              Ranked standings table
    GET    /api/players/scorers        Scorer board
    GET    /api/players/assists        Assist board

NO-OP COMMANDS:
  A goal without a side, a confirm without a pending goal and a commit
  without a meaningful session change nothing; they answer 204.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, unknown side
  - 409: Scenario load while a match is in progress
  - 503: Command loop closed or request cancelled while queued
  - 500: History store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/warp/matchday/season"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Loop *season.Loop
	Hub  *Hub // optional; reported by Health
}

// NewHandler creates a new handler driving loop.
func NewHandler(loop *season.Loop, hub *Hub) *Handler {
	return &Handler{Loop: loop, Hub: hub}
}

func (h *Handler) do(ctx context.Context, fn func(context.Context, *season.Tracker) error) error {
	return h.Loop.Do(ctx, fn)
}

// =============================================================================
// LIVE MATCH QUERIES
// =============================================================================

// GetMatch returns the full live view.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	var dto MatchDTO
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		dto = matchView(t)
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func matchView(t *season.Tracker) MatchDTO {
	home, away := t.Teams()
	scores := t.CurrentScores()
	return MatchDTO{
		Home:        TeamScoreDTO{Side: season.SideHome.String(), Name: home, Score: scores.Home},
		Away:        TeamScoreDTO{Side: season.SideAway.String(), Name: away, Score: scores.Away},
		PendingSide: t.PendingSide().String(),
		Goals:       toGoalDTOs(t.CurrentGoalLog()),
	}
}

// GetScores returns the running score.
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	var scores season.Scores
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		scores = t.CurrentScores()
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoresDTO{Home: scores.Home, Away: scores.Away})
}

// GetGoals returns the goal log, newest first.
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	var goals []season.GoalEvent
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		goals = t.CurrentGoalLog()
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalDTOs(goals))
}

// =============================================================================
// LIVE MATCH COMMANDS
// =============================================================================

// RecordGoal scores a goal for a side.
func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	var req RecordGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	side, err := season.ParseSide(req.Side)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid side", err)
		return
	}

	h.applyGoal(w, r, func(t *season.Tracker) (season.GoalEvent, bool) {
		return t.RecordGoal(side, req.Scorer, req.Assist)
	})
}

// SelectGoalSide opens a pending goal.
func (h *Handler) SelectGoalSide(w http.ResponseWriter, r *http.Request) {
	var req SelectSideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	side, err := season.ParseSide(req.Side)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid side", err)
		return
	}

	var (
		opened bool
		dto    MatchDTO
	)
	err = h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		opened = t.SelectGoalSide(side)
		dto = matchView(t)
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	if !opened {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// ConfirmPendingGoal records the pending goal with the given names.
func (h *Handler) ConfirmPendingGoal(w http.ResponseWriter, r *http.Request) {
	var req ConfirmGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.applyGoal(w, r, func(t *season.Tracker) (season.GoalEvent, bool) {
		return t.ConfirmPendingGoal(req.Scorer, req.Assist)
	})
}

func (h *Handler) applyGoal(w http.ResponseWriter, r *http.Request, fn func(*season.Tracker) (season.GoalEvent, bool)) {
	var (
		ev     season.GoalEvent
		scored bool
		scores season.Scores
	)
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		ev, scored = fn(t)
		scores = t.CurrentScores()
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	if !scored {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := RecordGoalDTO{Scores: ScoresDTO{Home: scores.Home, Away: scores.Away}}
	if ev.ID != "" {
		goal := toGoalDTO(ev)
		resp.Goal = &goal
	}
	log.Ctx(r.Context()).Info().
		Bool("logged", ev.ID != "").
		Int("home", scores.Home).
		Int("away", scores.Away).
		Msg("goal recorded")
	writeJSON(w, http.StatusOK, resp)
}

// CancelPendingGoal drops the pending goal.
func (h *Handler) CancelPendingGoal(w http.ResponseWriter, r *http.Request) {
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		t.CancelPendingGoal()
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTeam changes a side's identity.
func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	side, err := season.ParseSide(chi.URLParam(r, "side"))
	if err != nil || !side.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid side", err)
		return
	}
	var req RenameTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var dto MatchDTO
	err = h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		t.RenameTeam(side, req.Name)
		dto = matchView(t)
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// ResetSession zeroes the live match.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	var dto MatchDTO
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		t.ResetSession()
		dto = matchView(t)
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// CommitMatch moves the live match into history and standings.
func (h *Handler) CommitMatch(w http.ResponseWriter, r *http.Request) {
	var (
		rec       season.MatchRecord
		committed bool
	)
	err := h.do(r.Context(), func(ctx context.Context, t *season.Tracker) error {
		var err error
		rec, committed, err = t.CommitMatch(ctx)
		return err
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	if !committed {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log.Ctx(r.Context()).Info().
		Str("match_id", rec.ID).
		Str("home", rec.HomeName).
		Str("away", rec.AwayName).
		Int("home_score", rec.HomeScore).
		Int("away_score", rec.AwayScore).
		Msg("match committed")
	writeJSON(w, http.StatusCreated, toMatchRecordDTO(rec))
}

// =============================================================================
// SEASON QUERIES
// =============================================================================

// GetHistory returns committed matches, newest first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	var records []season.MatchRecord
	err := h.do(r.Context(), func(ctx context.Context, t *season.Tracker) error {
		var err error
		records, err = t.MatchHistory(ctx)
		return err
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}

	dtos := make([]MatchRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toMatchRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetStandings returns the ranked standings table.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	var rows []season.TeamStanding
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		rows = t.StandingsRanked()
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStandingDTOs(rows))
}

// GetScorers returns the scorer board.
func (h *Handler) GetScorers(w http.ResponseWriter, r *http.Request) {
	h.writeBoard(w, r, (*season.Tracker).ScorerBoardRanked)
}

// GetAssists returns the assist board.
func (h *Handler) GetAssists(w http.ResponseWriter, r *http.Request) {
	h.writeBoard(w, r, (*season.Tracker).AssistBoardRanked)
}

func (h *Handler) writeBoard(w http.ResponseWriter, r *http.Request, board func(*season.Tracker) []season.PlayerTally) {
	var tallies []season.PlayerTally
	err := h.do(r.Context(), func(_ context.Context, t *season.Tracker) error {
		tallies = board(t)
		return nil
	})
	if err != nil {
		writeLoopError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerTallyDTOs(tallies))
}

// Health reports liveness and the number of websocket clients.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dto := HealthDTO{Status: "healthy"}
	if h.Hub != nil {
		dto.Clients = h.Hub.ClientCount()
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeLoopError maps errors coming back from the command loop.
func writeLoopError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, season.ErrLoopClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "Tracker unavailable", err)
	case errors.Is(err, ErrMatchInProgress):
		writeError(w, http.StatusConflict, "Match in progress", err)
	case errors.Is(err, ErrUnknownScenario):
		writeError(w, http.StatusNotFound, "Scenario not found", err)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

/*
tracker.go - Command and query API of the season engine

PURPOSE:
  The Tracker owns one live Session plus the season-long PlayerLedger,
  Standings and History. Hosts drive it exclusively through the commands
  and queries below and are told what changed through a Notifier.

COMMANDS (mutating):
  SelectGoalSide      Open a pending goal for a side (the goal form)
  ConfirmPendingGoal  Record the pending goal with scorer/assist names
  CancelPendingGoal   Drop the pending goal, nothing else changes
  RecordGoal          Record a goal for a side in one step
  RenameTeam          Change a side's identity for future commits
  ResetSession        Zero the live match, keep team identities
  CommitMatch         Move the live match into history and standings
  Atomically          Run a batch of commands; on error the live match
                      and player boards are rolled back

QUERIES (pure snapshots):
  CurrentScores, CurrentGoalLog, Teams, PendingSide, MatchHistory,
  StandingsRanked, ScorerBoardRanked, AssistBoardRanked

GOAL POLICY:
  A goal always increments its side's score. It enters the goal log and
  the player boards only when the scorer name is valid; the assist is
  credited only alongside a logged goal and only when valid itself.

COMMIT:
  Snapshot -> History.Append -> Standings.ApplyResult -> Session.Reset.
  The only step that can fail is the history append, and it runs first,
  so a failed commit leaves every view untouched.

CONCURRENCY:
  A Tracker is not safe for concurrent use. Run it behind a Loop.
*/
package season

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Options configures a Tracker. Zero values pick the defaults.
type Options struct {
	HomeName string
	AwayName string
	Names    *NamePolicy
	Notifier Notifier
	Clock    func() time.Time
	NewID    func() string
}

// Tracker is the season engine.
type Tracker struct {
	session   *Session
	players   *PlayerLedger
	standings *Standings
	history   *History
	notifier  Notifier
	clock     func() time.Time
	newID     func() string
}

// NewTracker creates a Tracker recording committed matches into store.
func NewTracker(store HistoryStore, opts Options) *Tracker {
	policy := DefaultNamePolicy()
	if opts.Names != nil {
		policy = *opts.Names
	}
	t := &Tracker{
		session:   NewSession(opts.HomeName, opts.AwayName),
		players:   NewPlayerLedger(policy),
		standings: NewStandings(),
		history:   NewHistory(store),
		notifier:  opts.Notifier,
		clock:     opts.Clock,
		newID:     opts.NewID,
	}
	if t.notifier == nil {
		t.notifier = nopNotifier{}
	}
	if t.clock == nil {
		t.clock = time.Now
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	return t
}

// =============================================================================
// COMMANDS
// =============================================================================

// SelectGoalSide opens a pending goal for side. Selecting SideNone is a no-op.
func (t *Tracker) SelectGoalSide(side Side) bool {
	if !side.Valid() {
		return false
	}
	t.session.pending = side
	return true
}

// CancelPendingGoal discards the pending goal. No score, log or ledger changes.
func (t *Tracker) CancelPendingGoal() {
	t.session.pending = SideNone
}

// ConfirmPendingGoal records the pending goal. Without a pending goal it is a no-op.
func (t *Tracker) ConfirmPendingGoal(scorer, assist string) (GoalEvent, bool) {
	side := t.session.pending
	t.session.pending = SideNone
	return t.RecordGoal(side, scorer, assist)
}

// RecordGoal scores a goal for side. The bool reports whether the score
// changed; the returned event has an empty ID when the goal was not logged
// because the scorer name was missing or reserved.
func (t *Tracker) RecordGoal(side Side, scorer, assist string) (GoalEvent, bool) {
	if !side.Valid() {
		return GoalEvent{}, false
	}

	t.session.score(side)
	change := ChangeScores

	var ev GoalEvent
	if t.players.Credit(KindScorer, scorer) {
		ev = GoalEvent{
			ID:         t.newID(),
			Side:       side,
			Scorer:     t.players.policy.Clean(scorer),
			TeamName:   t.session.Name(side),
			RecordedAt: t.clock(),
		}
		if t.players.Credit(KindAssist, assist) {
			ev.Assist = t.players.policy.Clean(assist)
		}
		t.session.prepend(ev)
		change |= ChangeGoalLog | ChangeLedgers
	}

	t.notifier.Notify(change)
	return ev, true
}

// RenameTeam changes a side's identity. Standings rows already committed
// under the old name are left alone.
func (t *Tracker) RenameTeam(side Side, name string) bool {
	if !t.session.Rename(side, name) {
		return false
	}
	t.notifier.Notify(ChangeTeams)
	return true
}

// ResetSession zeroes both scores and clears the goal log.
func (t *Tracker) ResetSession() {
	t.session.Reset()
	t.notifier.Notify(ChangeScores | ChangeGoalLog)
}

// CommitMatch finalizes the live match. The bool is false when there was
// nothing meaningful to commit: both sides carry the same name, so the
// result cannot be attributed to two distinct standings rows.
func (t *Tracker) CommitMatch(ctx context.Context) (MatchRecord, bool, error) {
	if t.session.homeName == t.session.awayName {
		return MatchRecord{}, false, nil
	}

	rec := t.session.snapshot(t.newID())
	rec.CommittedAt = t.clock()

	if err := t.history.Append(ctx, rec); err != nil {
		return MatchRecord{}, false, &CommitError{Record: rec, Err: err}
	}
	t.standings.ApplyResult(rec.HomeName, rec.AwayName, rec.HomeScore, rec.AwayScore)
	t.session.Reset()

	t.notifier.Notify(ChangeHistory | ChangeStandings | ChangeScores | ChangeGoalLog)
	return rec, true, nil
}

// Atomically runs fn and, when it returns an error, puts the live session
// and the player boards back the way they were before fn started. History
// and standings are not restored, so fn may commit at most one match and
// only as its last step.
func (t *Tracker) Atomically(fn func() error) error {
	session := t.session.clone()
	players := t.players.clone()

	if err := fn(); err != nil {
		t.session = session
		t.players = players
		t.notifier.Notify(ChangeScores | ChangeGoalLog | ChangeLedgers | ChangeTeams)
		return err
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Teams returns the current home and away identities.
func (t *Tracker) Teams() (home, away string) {
	return t.session.homeName, t.session.awayName
}

func (t *Tracker) CurrentScores() Scores {
	return t.session.Scores()
}

// CurrentGoalLog returns the live goal log, newest first.
func (t *Tracker) CurrentGoalLog() []GoalEvent {
	return t.session.Goals()
}

func (t *Tracker) PendingSide() Side {
	return t.session.Pending()
}

// MatchHistory returns committed matches, newest first.
func (t *Tracker) MatchHistory(ctx context.Context) ([]MatchRecord, error) {
	return t.history.RankedView(ctx)
}

func (t *Tracker) StandingsRanked() []TeamStanding {
	return t.standings.RankedView()
}

func (t *Tracker) ScorerBoardRanked() []PlayerTally {
	return t.players.RankedView(KindScorer)
}

func (t *Tracker) AssistBoardRanked() []PlayerTally {
	return t.players.RankedView(KindAssist)
}

// Player returns one player's season totals.
func (t *Tracker) Player(name string) (PlayerStat, bool) {
	return t.players.Stat(name)
}

/*
errors.go - Centralized error types for the season engine

PURPOSE:
  Most bad input is absorbed by the engine itself: blank names fall back
  to defaults and commands without a meaningful target are no-ops. The
  errors below are the few conditions that do surface to a caller.

ERROR CATEGORIES:
  1. Input errors - values the API boundary could not parse
  2. Loop errors - the command loop is no longer accepting work
  3. Store errors - the history store failed, the commit was aborted
*/
package season

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidSide is returned when a side string is neither home nor away.
	ErrInvalidSide = errors.New("invalid side")

	// ErrLoopClosed is returned when a command is submitted after Close.
	ErrLoopClosed = errors.New("command loop closed")

	// ErrDuplicateMatchID is returned by a HistoryStore when a record ID was already appended.
	ErrDuplicateMatchID = errors.New("duplicate match id")

	// ErrStoreFailure is returned when the history store rejects a write or read.
	ErrStoreFailure = errors.New("history store failure")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// CommitError carries the match that could not be committed.
// The session, standings and history are left exactly as they were.
type CommitError struct {
	Record MatchRecord
	Err    error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s %d-%d %s: %v",
		e.Record.HomeName, e.Record.HomeScore, e.Record.AwayScore, e.Record.AwayName, e.Err)
}

func (e *CommitError) Unwrap() []error {
	return []error{ErrStoreFailure, e.Err}
}

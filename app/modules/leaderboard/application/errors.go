package leaderboardservice

import (
	"errors"
	"fmt"
)

var (
	// ErrTournamentList is returned when the tournament list cannot be loaded.
	ErrTournamentList = errors.New("tournament list unavailable")
	// ErrRoundFailed wraps any failure while processing a single tournament.
	ErrRoundFailed = errors.New("tournament round failed")
)

// RoundError identifies the tournament that aborted a build.
type RoundError struct {
	Label        string
	TournamentID string
	Err          error
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("round %s (tournament %s): %v", e.Label, e.TournamentID, e.Err)
}

func (e *RoundError) Unwrap() []error {
	return []error{ErrRoundFailed, e.Err}
}

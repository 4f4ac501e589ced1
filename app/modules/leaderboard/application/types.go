package leaderboardservice

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/google/uuid"
)

// RoundSummary is what a single tournament contributed to the leaderboard.
type RoundSummary struct {
	Label        string                            `json:"label"`
	TournamentID string                            `json:"tournament_id"`
	Players      int                               `json:"players"`
	Ranking      []leaderboarddomain.RankedTeam    `json:"ranking"`
	Placements   []leaderboarddomain.TeamPlacement `json:"placements"`
}

// Result is the outcome of one leaderboard build.
type Result struct {
	RunID       uuid.UUID                      `json:"run_id"`
	Variant     leaderboarddomain.Variant      `json:"variant"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Leaderboard *leaderboarddomain.Leaderboard `json:"-"`
	Rounds      []RoundSummary                 `json:"rounds"`
	RoundLabels []string                       `json:"round_labels,omitempty"`
	Standings   []leaderboarddomain.Standing   `json:"standings"`
}

package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
)

// Service defines the contract for leaderboard operations.
type Service interface {
	// BuildLeaderboard runs one full batch: list tournaments, fetch each one's
	// results in order, and fold the placements into a fresh leaderboard.
	BuildLeaderboard(ctx context.Context) (*Result, error)

	// Variant reports which scoring variant the service builds.
	Variant() leaderboarddomain.Variant
}

// TournamentSource lists the tournaments that make up the series, in round order.
type TournamentSource interface {
	ListTournaments(ctx context.Context) ([]string, error)
}

// ResultsSource returns the player result records of one tournament.
type ResultsSource interface {
	FetchResults(ctx context.Context, tournamentID string) ([]leaderboarddomain.PlayerResult, error)
}

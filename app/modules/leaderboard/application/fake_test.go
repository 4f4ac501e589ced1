package leaderboardservice

import (
	"context"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
)

// ------------------------
// Fake Tournament Source
// ------------------------

type FakeTournamentSource struct {
	trace []string

	ListTournamentsFunc func(ctx context.Context) ([]string, error)
}

func NewFakeTournamentSource(ids ...string) *FakeTournamentSource {
	return &FakeTournamentSource{
		ListTournamentsFunc: func(ctx context.Context) ([]string, error) {
			return ids, nil
		},
	}
}

func (f *FakeTournamentSource) ListTournaments(ctx context.Context) ([]string, error) {
	f.trace = append(f.trace, "ListTournaments")
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx)
	}
	return nil, nil
}

// ------------------------
// Fake Results Source
// ------------------------

type FakeResultsSource struct {
	trace []string

	Feeds            map[string][]leaderboarddomain.PlayerResult
	FetchResultsFunc func(ctx context.Context, tournamentID string) ([]leaderboarddomain.PlayerResult, error)
}

func NewFakeResultsSource() *FakeResultsSource {
	return &FakeResultsSource{
		Feeds: make(map[string][]leaderboarddomain.PlayerResult),
	}
}

func (f *FakeResultsSource) FetchResults(ctx context.Context, tournamentID string) ([]leaderboarddomain.PlayerResult, error) {
	f.trace = append(f.trace, "FetchResults:"+tournamentID)
	if f.FetchResultsFunc != nil {
		return f.FetchResultsFunc(ctx, tournamentID)
	}
	records, ok := f.Feeds[tournamentID]
	if !ok {
		return nil, fmt.Errorf("no feed for tournament %s", tournamentID)
	}
	return records, nil
}

// --- Accessors for assertions ---

func (f *FakeResultsSource) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func player(team string, score int) leaderboarddomain.PlayerResult {
	return leaderboarddomain.PlayerResult{Team: &team, Score: &score}
}

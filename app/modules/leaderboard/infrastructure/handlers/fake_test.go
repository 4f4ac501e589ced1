package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
)

// FakeService implements leaderboardservice.Service for handler testing.
type FakeService struct {
	trace []string

	BuildLeaderboardFunc func(ctx context.Context) (*leaderboardservice.Result, error)
	VariantValue         leaderboarddomain.Variant
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}, VariantValue: leaderboarddomain.VariantDetailed}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) BuildLeaderboard(ctx context.Context) (*leaderboardservice.Result, error) {
	f.record("BuildLeaderboard")
	if f.BuildLeaderboardFunc != nil {
		return f.BuildLeaderboardFunc(ctx)
	}
	return &leaderboardservice.Result{}, nil
}

func (f *FakeService) Variant() leaderboarddomain.Variant {
	return f.VariantValue
}

var _ leaderboardservice.Service = (*FakeService)(nil)

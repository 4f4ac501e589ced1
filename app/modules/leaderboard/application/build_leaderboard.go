package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BuildLeaderboard runs the full pipeline once.
//
// Tournaments are processed strictly in list order, one at a time. The first
// fetch or parse failure aborts the build; no partial leaderboard is returned.
func (s *LeaderboardService) BuildLeaderboard(ctx context.Context) (result *Result, err error) {
	runID := uuid.New()
	ctx, span := s.tracer.Start(ctx, "LeaderboardService.BuildLeaderboard", trace.WithAttributes(
		attribute.String("run_id", runID.String()),
		attribute.String("variant", string(s.variant)),
	))
	defer span.End()

	logger := s.logger.With(slog.String("run_id", runID.String()), slog.String("variant", string(s.variant)))
	start := time.Now()
	defer func() {
		s.metrics.RecordRun(ctx, string(s.variant), time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.ErrorContext(ctx, "Leaderboard build failed", slog.Any("error", err))
		}
	}()

	ids, err := s.tournaments.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTournamentList, err)
	}
	logger.InfoContext(ctx, "Building leaderboard", slog.Int("tournaments", len(ids)))

	lb := leaderboarddomain.NewLeaderboard(s.variant)
	rounds := make([]RoundSummary, 0, len(ids))

	for i, id := range ids {
		summary, err := s.processRound(ctx, logger, lb, i, id)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, summary)
	}

	result = &Result{
		RunID:       runID,
		Variant:     s.variant,
		GeneratedAt: s.now().UTC(),
		Leaderboard: lb,
		Rounds:      rounds,
		RoundLabels: lb.RoundLabels(),
		Standings:   lb.Standings(),
	}

	logger.InfoContext(ctx, "Leaderboard built",
		slog.Int("rounds", lb.Rounds()),
		slog.Int("teams", len(result.Standings)),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// processRound fetches one tournament and folds it in as round i.
func (s *LeaderboardService) processRound(
	ctx context.Context,
	logger *slog.Logger,
	lb *leaderboarddomain.Leaderboard,
	i int,
	tournamentID string,
) (RoundSummary, error) {
	label := leaderboarddomain.RoundLabel(i)
	ctx, span := s.tracer.Start(ctx, "LeaderboardService.processRound", trace.WithAttributes(
		attribute.String("round", label),
		attribute.String("tournament_id", tournamentID),
	))
	defer span.End()

	fetchStart := time.Now()
	records, err := s.results.FetchResults(ctx, tournamentID)
	s.metrics.RecordTournamentFetch(ctx, time.Since(fetchStart), err)
	if err != nil {
		span.RecordError(err)
		return RoundSummary{}, &RoundError{Label: label, TournamentID: tournamentID, Err: err}
	}
	s.metrics.RecordPlayerRecords(ctx, len(records))

	ranked := leaderboarddomain.RankTeams(leaderboarddomain.ParseResults(records, s.variant))
	placements := leaderboarddomain.AssignPlacements(ranked)
	lb.AddRound(placements)
	s.metrics.RecordRoundTeams(ctx, len(ranked))

	logger.DebugContext(ctx, "Round processed",
		slog.String("round", label),
		slog.String("tournament_id", tournamentID),
		slog.Int("players", len(records)),
		slog.Int("teams", len(ranked)),
	)

	return RoundSummary{
		Label:        label,
		TournamentID: tournamentID,
		Players:      len(records),
		Ranking:      ranked,
		Placements:   placements,
	}, nil
}

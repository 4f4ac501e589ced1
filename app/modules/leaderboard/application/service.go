package leaderboardservice

import (
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	leaderboardmetrics "github.com/Black-And-White-Club/team-leaderboard/app/observability/metrics/leaderboard"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	tournaments TournamentSource
	results     ResultsSource
	variant     leaderboarddomain.Variant
	logger      *slog.Logger
	metrics     leaderboardmetrics.LeaderboardMetrics
	tracer      trace.Tracer
	now         func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	tournaments TournamentSource,
	results ResultsSource,
	variant leaderboarddomain.Variant,
	logger *slog.Logger,
	metrics leaderboardmetrics.LeaderboardMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = leaderboardmetrics.NewNoop()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("leaderboard")
	}
	return &LeaderboardService{
		tournaments: tournaments,
		results:     results,
		variant:     variant,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		now:         time.Now,
	}
}

// Variant reports which scoring variant the service builds.
func (s *LeaderboardService) Variant() leaderboarddomain.Variant {
	return s.variant
}

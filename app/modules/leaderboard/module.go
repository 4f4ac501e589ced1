package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	leaderboardhandlers "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/lichess"
	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/publisher"
	leaderboardrouter "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/team-leaderboard/app/observability"
	"github.com/Black-And-White-Club/team-leaderboard/config"
	"github.com/go-chi/chi/v5"
)

const (
	// pageRequestsPerSecond and pageBurst throttle page loads per client IP.
	pageRequestsPerSecond = 0.5
	pageBurst             = 5
	pageTimeout           = 5 * time.Minute
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	Handlers           leaderboardhandlers.Handlers
	Publisher          *publisher.StandingsPublisher
	config             *config.Config
	observability      observability.Observability
	stop               chan struct{}
	stopOnce           sync.Once
}

// NewLeaderboardModule creates a new instance of the Leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.LeaderboardMetrics
	tracer := obs.Registry.Tracer

	variant, err := leaderboarddomain.ParseVariant(cfg.Leaderboard.Variant)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called",
		slog.String("variant", string(variant)),
		slog.String("tournaments", cfg.Source.TournamentsPath),
	)

	client := lichess.NewClient(lichess.Options{
		BaseURL:           cfg.Source.ResultsBaseURL,
		TournamentsPath:   cfg.Source.TournamentsPath,
		Limit:             cfg.Source.ResultsLimit,
		UserAgent:         cfg.Source.UserAgent,
		RequestsPerSecond: cfg.Source.RequestsPerSecond,
		Timeout:           cfg.Source.RequestTimeout,
	}, logger)

	service := leaderboardservice.NewLeaderboardService(client, client, variant, logger, metrics, tracer)

	module := &Module{
		LeaderboardService: service,
		Handlers:           leaderboardhandlers.NewLeaderboardHandlers(service, cfg.Leaderboard.Title, logger, tracer),
		config:             cfg,
		observability:      obs,
		stop:               make(chan struct{}),
	}

	if cfg.NATS.Enabled {
		pub, err := publisher.NewNATSPublisher(cfg.NATS.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create standings publisher: %w", err)
		}
		module.Publisher = publisher.New(pub, cfg.NATS.Subject, logger)
	}

	return module, nil
}

// Build computes the leaderboard once and publishes it when NATS is enabled.
// A publish failure is returned alongside the computed result.
func (m *Module) Build(ctx context.Context) (*leaderboardservice.Result, error) {
	res, err := m.LeaderboardService.BuildLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if m.Publisher != nil {
		if err := m.Publisher.Publish(ctx, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Router returns the HTTP routes of the module.
func (m *Module) Router() chi.Router {
	return leaderboardrouter.NewRouter(m.Handlers, leaderboardrouter.Options{
		Limiter:           leaderboardhandlers.NewIPRateLimiter(pageRequestsPerSecond, pageBurst),
		Registry:          m.observability.Registry.Prometheus,
		RequestTimeout:    pageTimeout,
		TrustProxyHeaders: m.config.HTTP.TrustProxyHeaders,
	})
}

// Run blocks until ctx is canceled or the module is closed.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	if wg != nil {
		defer wg.Done()
	}

	select {
	case <-ctx.Done():
	case <-m.stop:
	}
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	m.stopOnce.Do(func() { close(m.stop) })

	if m.Publisher != nil {
		if err := m.Publisher.Close(); err != nil {
			logger.Error("Error closing standings publisher", slog.Any("error", err))
			return fmt.Errorf("error closing publisher: %w", err)
		}
	}

	logger.Info("Leaderboard module stopped")
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard"
	leaderboardservice "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/team-leaderboard/app/observability"
	"github.com/Black-And-White-Club/team-leaderboard/config"
)

const shutdownTimeout = 10 * time.Second

// App holds the configured modules of the process.
type App struct {
	Config            *config.Config
	Observability     observability.Observability
	LeaderboardModule *leaderboard.Module
	wg                sync.WaitGroup
}

// NewApp initializes observability and the leaderboard module.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.Init(ctx, observability.Config{
		ServiceName: cfg.Observability.ServiceName,
		Environment: cfg.Observability.Environment,
		LogLevel:    cfg.Observability.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	return newApp(ctx, cfg, obs)
}

func newApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	module, err := leaderboard.NewLeaderboardModule(ctx, cfg, obs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	return &App{
		Config:            cfg,
		Observability:     obs,
		LeaderboardModule: module,
	}, nil
}

// Build computes the leaderboard once.
func (app *App) Build(ctx context.Context) (*leaderboardservice.Result, error) {
	return app.LeaderboardModule.Build(ctx)
}

// Serve runs the HTTP server on the configured address until ctx is canceled.
func (app *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.Config.HTTP.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.Config.HTTP.Address, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	logger := app.Observability.Provider.Logger

	app.wg.Add(1)
	go app.LeaderboardModule.Run(ctx, &app.wg)

	srv := &http.Server{
		Handler:           app.LeaderboardModule.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}

// Close stops the modules and waits for their goroutines.
func (app *App) Close() error {
	err := app.LeaderboardModule.Close()
	app.wg.Wait()
	return err
}

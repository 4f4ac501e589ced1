package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	leaderboardmetrics "github.com/Black-And-White-Club/team-leaderboard/app/observability/metrics/leaderboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds what the observability stack needs to start.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
}

// Provider owns process-wide logging and tracing.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Registry hands out the instruments modules use.
type Registry struct {
	Tracer             trace.Tracer
	Prometheus         *prometheus.Registry
	LeaderboardMetrics leaderboardmetrics.LeaderboardMetrics
}

// Observability bundles the provider and registry passed to modules.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer and Prometheus registry for the process.
// Tracing uses the globally registered otel provider, which is a no-op unless
// an SDK has been installed.
func Init(ctx context.Context, cfg Config) (Observability, error) {
	logger := NewLogger(cfg)

	tp := otel.GetTracerProvider()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := leaderboardmetrics.NewPrometheus(reg, cfg.ServiceName)
	if err != nil {
		return Observability{}, err
	}

	logger.InfoContext(ctx, "Observability initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	return Observability{
		Provider: &Provider{Logger: logger, TracerProvider: tp},
		Registry: &Registry{
			Tracer:             tp.Tracer(cfg.ServiceName),
			Prometheus:         reg,
			LeaderboardMetrics: metrics,
		},
	}, nil
}

// NewNoop returns an Observability that discards everything. Used in tests.
func NewNoop() Observability {
	tp := noop.NewTracerProvider()
	return Observability{
		Provider: &Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), TracerProvider: tp},
		Registry: &Registry{
			Tracer:             tp.Tracer("test"),
			Prometheus:         prometheus.NewRegistry(),
			LeaderboardMetrics: leaderboardmetrics.NewNoop(),
		},
	}
}

// NewLogger returns a JSON logger, or a text logger in development.
func NewLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.Environment == "development" || cfg.Environment == "local" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package leaderboardrouter

import (
	"time"

	leaderboardhandlers "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PagePath     = "/"
	JSONPath     = "/api/leaderboard"
	WorkbookPath = "/leaderboard.xlsx"
	ChartPath    = "/leaderboard.png"
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
)

// Options tune the router. A nil Limiter disables per-IP throttling and a nil
// Registry leaves /metrics unmounted.
type Options struct {
	Limiter        *leaderboardhandlers.IPRateLimiter
	Registry       *prometheus.Registry
	RequestTimeout time.Duration
	// TrustProxyHeaders takes the client IP from X-Forwarded-For and friends.
	// Only safe behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// NewRouter mounts the leaderboard handlers on a chi router.
func NewRouter(handlers leaderboardhandlers.Handlers, opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)

	r.Get(HealthPath, handlers.HandleHTTPHealth)
	if opts.Registry != nil {
		r.Handle(MetricsPath, promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{Registry: opts.Registry}))
	}

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(leaderboardhandlers.RateLimitMiddleware(opts.Limiter))
		}
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}
		r.Get(PagePath, handlers.HandleHTTPPage)
		r.Get(JSONPath, handlers.HandleHTTPJSON)
		r.Get(WorkbookPath, handlers.HandleHTTPWorkbook)
		r.Get(ChartPath, handlers.HandleHTTPChart)
	})

	return r
}

package leaderboardmetrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics records what a leaderboard build does.
type LeaderboardMetrics interface {
	RecordRun(ctx context.Context, variant string, duration time.Duration, err error)
	RecordTournamentFetch(ctx context.Context, duration time.Duration, err error)
	RecordRoundTeams(ctx context.Context, teams int)
	RecordPlayerRecords(ctx context.Context, records int)
}

type prometheusMetrics struct {
	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	roundTeams    prometheus.Histogram
	records       prometheus.Counter
}

// NewPrometheus registers the leaderboard instruments on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (LeaderboardMetrics, error) {
	namespace = strings.NewReplacer("-", "_", ".", "_").Replace(namespace)

	m := &prometheusMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Leaderboard builds by variant and outcome.",
		}, []string{"variant", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full leaderboard build.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"variant"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournament_fetches_total",
			Help:      "Tournament results fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tournament_fetch_duration_seconds",
			Help:      "Latency of a single tournament results fetch.",
			Buckets:   prometheus.DefBuckets,
		}),
		roundTeams: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_teams",
			Help:      "Distinct teams ranked per tournament.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_records_total",
			Help:      "Player result records parsed.",
		}),
	}

	for _, c := range []prometheus.Collector{m.runs, m.runDuration, m.fetches, m.fetchDuration, m.roundTeams, m.records} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register leaderboard metric: %w", err)
		}
	}
	return m, nil
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func (m *prometheusMetrics) RecordRun(_ context.Context, variant string, duration time.Duration, err error) {
	m.runs.WithLabelValues(variant, outcome(err)).Inc()
	m.runDuration.WithLabelValues(variant).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordTournamentFetch(_ context.Context, duration time.Duration, err error) {
	m.fetches.WithLabelValues(outcome(err)).Inc()
	m.fetchDuration.Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordRoundTeams(_ context.Context, teams int) {
	m.roundTeams.Observe(float64(teams))
}

func (m *prometheusMetrics) RecordPlayerRecords(_ context.Context, records int) {
	m.records.Add(float64(records))
}

type noopMetrics struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() LeaderboardMetrics { return noopMetrics{} }

func (noopMetrics) RecordRun(context.Context, string, time.Duration, error)     {}
func (noopMetrics) RecordTournamentFetch(context.Context, time.Duration, error) {}
func (noopMetrics) RecordRoundTeams(context.Context, int)                       {}
func (noopMetrics) RecordPlayerRecords(context.Context, int)                    {}

package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/lichess"
	"github.com/Black-And-White-Club/team-leaderboard/app/observability"
	"github.com/Black-And-White-Club/team-leaderboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLichess serves a tournament list and two results feeds.
func fakeLichess(t *testing.T) *httptest.Server {
	t.Helper()
	feeds := map[string]string{
		"/api/tournament/t1/results": `{"team":"Alpha","score":5}
{"team":"Beta","score":3}
{"team":"Gamma","score":1}`,
		"/api/tournament/t2/results": `{"team":"Alpha","score":5}
{"team":"Beta","score":7}`,
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tournaments.json" {
			w.Write([]byte(`{"tournaments":["t1","t2"]}`))
			return
		}
		body, ok := feeds[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(body))
	}))
}

func testConfig(srvURL, variant string) *config.Config {
	cfg := &config.Config{}
	cfg.Source.TournamentsPath = srvURL + "/tournaments.json"
	cfg.Source.ResultsBaseURL = srvURL + "/api/tournament"
	cfg.Source.ResultsLimit = 200
	cfg.Leaderboard.Variant = variant
	cfg.Leaderboard.Title = "Test Series"
	return cfg
}

func TestModule_Build(t *testing.T) {
	srv := fakeLichess(t)
	defer srv.Close()

	m, err := NewLeaderboardModule(context.Background(), testConfig(srv.URL, "detailed"), observability.NewNoop())
	require.NoError(t, err)
	defer m.Close()
	assert.Nil(t, m.Publisher)

	res, err := m.Build(context.Background())
	require.NoError(t, err)

	want := []leaderboarddomain.Standing{
		{Rank: 1, Team: "Alpha", Total: 18, Rounds: []int{10, 8}},
		{Rank: 2, Team: "Beta", Total: 18, Rounds: []int{8, 10}},
		{Rank: 3, Team: "Gamma", Total: 6, Rounds: []int{6, 0}},
	}
	assert.Equal(t, want, res.Standings)
	assert.Equal(t, []string{"R1", "R2"}, res.RoundLabels)
}

func TestModule_RouterServesLeaderboard(t *testing.T) {
	srv := fakeLichess(t)
	defer srv.Close()

	m, err := NewLeaderboardModule(context.Background(), testConfig(srv.URL, "overall"), observability.NewNoop())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Variant   string                       `json:"variant"`
		Standings []leaderboarddomain.Standing `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "overall", body.Variant)
	require.Len(t, body.Standings, 3)
	assert.Nil(t, body.Standings[0].Rounds)

	rr = httptest.NewRecorder()
	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "Total Points"))
}

func TestModule_FailingFeedIsBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tournaments.json" {
			w.Write([]byte(`{"tournaments":["t1"]}`))
			return
		}
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	m, err := NewLeaderboardModule(context.Background(), testConfig(srv.URL, ""), observability.NewNoop())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestModule_TournamentListWithoutField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m, err := NewLeaderboardModule(context.Background(), testConfig(srv.URL, ""), observability.NewNoop())
	require.NoError(t, err)

	res, err := m.Build(context.Background())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, leaderboardservice.ErrTournamentList))
	assert.True(t, errors.Is(err, lichess.ErrNoTournamentsField))
}

func TestNewLeaderboardModule_InvalidVariant(t *testing.T) {
	_, err := NewLeaderboardModule(context.Background(), testConfig("http://127.0.0.1", "weekly"), observability.NewNoop())
	assert.Error(t, err)
}

func waitGroupDone(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestModule_CloseStopsRun(t *testing.T) {
	m, err := NewLeaderboardModule(context.Background(), testConfig("http://127.0.0.1", ""), observability.NewNoop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(context.Background(), &wg)

	// Close races with Run starting up; both orders must let Run return.
	require.NoError(t, m.Close())
	waitGroupDone(t, &wg)
	assert.NoError(t, m.Close())
}

func TestModule_RunAfterClose(t *testing.T) {
	m, err := NewLeaderboardModule(context.Background(), testConfig("http://127.0.0.1", ""), observability.NewNoop())
	require.NoError(t, err)
	require.NoError(t, m.Close())

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(context.Background(), &wg)
	waitGroupDone(t, &wg)
}

func TestModule_RunStopsOnContextCancel(t *testing.T) {
	m, err := NewLeaderboardModule(context.Background(), testConfig("http://127.0.0.1", ""), observability.NewNoop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(ctx, &wg)
	cancel()
	waitGroupDone(t, &wg)
}

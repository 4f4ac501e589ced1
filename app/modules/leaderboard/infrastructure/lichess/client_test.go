package lichess

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL, tournamentsPath string) *Client {
	return NewClient(Options{
		BaseURL:         baseURL,
		TournamentsPath: tournamentsPath,
		Limit:           200,
		UserAgent:       "team-leaderboard-test",
		Timeout:         5 * time.Second,
	}, nil)
}

func TestDecodeResults(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLen  int
		wantLine int
	}{
		{name: "two lines", body: `{"team":"Alpha","score":5}` + "\n" + `{"team":"Beta","score":3}`, wantLen: 2},
		{name: "surrounding whitespace", body: "\n  " + `{"team":"Alpha","score":5}` + "\n\n", wantLen: 1},
		{name: "missing fields", body: `{"username":"bob"}`, wantLen: 1},
		{name: "empty body", body: "", wantLine: 1},
		{name: "whitespace-only body", body: "  \n ", wantLine: 1},
		{name: "invalid second line", body: `{"team":"Alpha","score":5}` + "\n" + `{"team":`, wantLine: 2},
		{name: "blank interior line", body: `{"score":1}` + "\n\n" + `{"score":2}`, wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeResults([]byte(tt.body))
			if tt.wantLine > 0 {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResult)
				var perr *ParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.wantLine, perr.Line)
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.wantLen)
		})
	}
}

func TestDecodeResults_Defaults(t *testing.T) {
	records, err := DecodeResults([]byte(`{"score":4}` + "\n" + `{"team":"Beta"}`))
	require.NoError(t, err)

	team, score := records[0].Resolve()
	assert.Equal(t, leaderboarddomain.NoTeam, team)
	assert.Equal(t, 4, score)

	team, score = records[1].Resolve()
	assert.Equal(t, "Beta", team)
	assert.Equal(t, 0, score)
}

func TestClient_FetchResults(t *testing.T) {
	var gotAccept, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"rank":1,"score":5,"username":"a","team":"Alpha"}` + "\n" + `{"rank":2,"score":3,"username":"b","team":"Beta"}` + "\n"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL+"/api/tournament/", "")
	records, err := c.FetchResults(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "application/x-ndjson", gotAccept)
	assert.Equal(t, "/api/tournament/abc123/results", gotPath)
	assert.Equal(t, "nb=200", gotQuery)
	require.Len(t, records, 2)

	team, score := records[0].Resolve()
	assert.Equal(t, "Alpha", team)
	assert.Equal(t, 5, score)
	assert.Equal(t, "a", records[0].Username)
}

func TestClient_FetchResults_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tournament not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").FetchResults(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
}

func TestClient_FetchResults_MalformedLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"team":"Alpha","score":5}` + "\nnot json\n"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").FetchResults(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrMalformedResult)
}

func TestClient_FetchResults_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, "").FetchResults(context.Background(), "t1")
	assert.Nil(t, records)
	assert.ErrorIs(t, err, ErrMalformedResult)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestClient_FetchResults_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, "").FetchResults(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_FetchResults_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient("http://127.0.0.1:1", "").FetchResults(ctx, "t1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, ErrFetchFailed))
}

func TestClient_ListTournaments_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournaments.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tournaments":["abc123","def456"]}`), 0o644))

	ids, err := newTestClient("", path).ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123", "def456"}, ids)
}

func TestClient_ListTournaments_MissingFile(t *testing.T) {
	_, err := newTestClient("", filepath.Join(t.TempDir(), "nope.json")).ListTournaments(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_ListTournaments_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tournaments.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"tournaments":["x1"]}`))
	}))
	defer srv.Close()

	ids, err := newTestClient("", srv.URL+"/tournaments.json").ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x1"}, ids)
}

func TestClient_ListTournaments_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournaments.json")
	require.NoError(t, os.WriteFile(path, []byte(`["abc123"]`), 0o644))

	_, err := newTestClient("", path).ListTournaments(context.Background())
	assert.Error(t, err)
}

func TestClient_ListTournaments_MissingField(t *testing.T) {
	tests := map[string]string{
		"no key":     `{"ids":["abc123"]}`,
		"null value": `{"tournaments":null}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tournaments.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			ids, err := newTestClient("", path).ListTournaments(context.Background())
			assert.Nil(t, ids)
			assert.ErrorIs(t, err, ErrNoTournamentsField)
		})
	}
}

func TestClient_ListTournaments_EmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournaments.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tournaments":[]}`), 0o644))

	ids, err := newTestClient("", path).ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestClient_ResultsURL(t *testing.T) {
	c := newTestClient("https://lichess.org/api/tournament/", "")
	assert.Equal(t, "https://lichess.org/api/tournament/abc123/results?nb=200", c.ResultsURL("abc123"))

	c.Limit = 0
	assert.Equal(t, "https://lichess.org/api/tournament/a%2Fb/results", c.ResultsURL("a/b"))
}

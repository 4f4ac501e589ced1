package lichess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"golang.org/x/time/rate"
)

const (
	ndjsonContentType = "application/x-ndjson"
	// maxErrorBody caps how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Client fetches the tournament list and per-tournament results.
// It is safe for concurrent use.
type Client struct {
	HTTP            *http.Client
	BaseURL         string
	TournamentsPath string
	Limit           int
	UserAgent       string

	limiter *rate.Limiter
	logger  *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	TournamentsPath   string
	Limit             int
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// NewClient creates a new Client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &Client{
		HTTP:            &http.Client{Timeout: opts.Timeout},
		BaseURL:         strings.TrimRight(opts.BaseURL, "/"),
		TournamentsPath: opts.TournamentsPath,
		Limit:           opts.Limit,
		UserAgent:       opts.UserAgent,
		limiter:         rate.NewLimiter(limit, 1),
		logger:          logger,
	}
}

type tournamentList struct {
	Tournaments *[]string `json:"tournaments"`
}

// ListTournaments loads the ordered tournament ids from a local file or, when
// TournamentsPath is an http(s) URL, over the network.
func (c *Client) ListTournaments(ctx context.Context) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(c.TournamentsPath) {
		data, err = c.get(ctx, c.TournamentsPath, "application/json")
	} else {
		data, err = os.ReadFile(c.TournamentsPath)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
	}
	if err != nil {
		return nil, err
	}

	var list tournamentList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode tournament list: %w", err)
	}
	if list.Tournaments == nil {
		return nil, fmt.Errorf("%s: %w", c.TournamentsPath, ErrNoTournamentsField)
	}
	ids := *list.Tournaments

	c.logger.DebugContext(ctx, "Loaded tournament list",
		slog.String("source", c.TournamentsPath),
		slog.Int("count", len(ids)),
	)
	return ids, nil
}

// FetchResults downloads and decodes one tournament's results feed.
func (c *Client) FetchResults(ctx context.Context, tournamentID string) ([]leaderboarddomain.PlayerResult, error) {
	body, err := c.get(ctx, c.ResultsURL(tournamentID), ndjsonContentType)
	if err != nil {
		return nil, err
	}

	records, err := DecodeResults(body)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", tournamentID, err)
	}
	return records, nil
}

// ResultsURL builds the results endpoint for a tournament.
func (c *Client) ResultsURL(tournamentID string) string {
	u := c.BaseURL + "/" + url.PathEscape(tournamentID) + "/results"
	if c.Limit > 0 {
		u += "?nb=" + strconv.Itoa(c.Limit)
	}
	return u
}

func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFetchFailed, rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

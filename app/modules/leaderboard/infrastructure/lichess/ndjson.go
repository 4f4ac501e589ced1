package lichess

import (
	"bytes"
	"encoding/json"
	"errors"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
)

var errEmptyBody = errors.New("empty results body")

// DecodeResults parses a newline-delimited JSON results body.
//
// Leading and trailing whitespace is trimmed before splitting on '\n'. Every
// remaining line must decode on its own; the first one that does not fails
// the whole body. An empty body is a single blank line and fails as line 1.
func DecodeResults(body []byte) ([]leaderboarddomain.PlayerResult, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, &ParseError{Line: 1, Err: errEmptyBody}
	}

	lines := bytes.Split(body, []byte("\n"))
	records := make([]leaderboarddomain.PlayerResult, 0, len(lines))
	for i, line := range lines {
		var r leaderboarddomain.PlayerResult
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, &ParseError{Line: i + 1, Err: err}
		}
		records = append(records, r)
	}
	return records, nil
}

package lichess

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed marks a network or HTTP failure talking to a source.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrMalformedResult marks a results feed line that is not valid JSON.
	ErrMalformedResult = errors.New("malformed result line")
	// ErrNoTournamentsField marks a tournament list without a "tournaments" array.
	ErrNoTournamentsField = errors.New(`tournament list has no "tournaments" array`)
)

// FetchError carries the HTTP details of a failed request.
type FetchError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("GET %s failed: %d body=%s", e.URL, e.StatusCode, e.Body)
}

func (e *FetchError) Unwrap() error {
	return ErrFetchFailed
}

// ParseError identifies the feed line that could not be decoded.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedResult, e.Err}
}

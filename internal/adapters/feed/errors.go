package feed

import "errors"

// Sentinel kinds for feed errors. These allow errors.Is/As from callers.
var (
	// ErrMalformedScore marks a score string that could not be parsed
	// into games and sets. Recovered locally: the match is rated with
	// a neutral margin.
	ErrMalformedScore = errors.New("malformed score")

	// ErrBadRecord marks a CSV row missing a required field. Fatal for
	// the file: normalized inputs are expected to be well formed.
	ErrBadRecord = errors.New("bad match record")

	// ErrNoData means the configured source files produced no matches.
	ErrNoData = errors.New("no match data")
)

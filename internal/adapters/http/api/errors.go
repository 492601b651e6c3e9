package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUpstreamUnavailable = errors.New("no pool data available")
	ErrPlayerNotTracked    = errors.New("player is not tracked")
)

package service

import "errors"

var (
	// ErrUnknownPoolType marks a request for a pool outside the configured set.
	ErrUnknownPoolType = errors.New("unknown pool type")

	// ErrNoPoolsAvailable is returned when not a single pool could be fetched.
	ErrNoPoolsAvailable = errors.New("no pools available")

	// ErrAllCategoriesFailed is returned when a mapping refresh could not
	// reach any category and no stale mapping exists to fall back on.
	ErrAllCategoriesFailed = errors.New("all category fetches failed")
)

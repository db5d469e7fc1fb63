package shared

import "errors"

var (
	// ErrNotFound indicates a detail lookup for an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable indicates the relational store could not be reached.
	// It is distinct from an empty result, which is never an error.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidRange indicates a malformed date range filter.
	ErrInvalidRange = errors.New("invalid date range")
)

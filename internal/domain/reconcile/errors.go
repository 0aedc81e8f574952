package reconcile

import "errors"

// Sentinel kinds for reconciliation errors.
var (
	// ErrOverlap marks a venue present in both matched and unmatched.
	ErrOverlap = errors.New("venue both matched and unmatched")
	// ErrCoverage marks state that does not cover the venue universe.
	ErrCoverage = errors.New("state does not cover venue universe")
)

package matching

import "errors"

// Sentinel kinds for matching errors.
var (
	// ErrBatchTransport aborts a remote run; nothing is persisted.
	ErrBatchTransport = errors.New("geocode batch failed")
	// ErrMalformedResponse marks a candidate that cannot be tied to a venue.
	ErrMalformedResponse = errors.New("malformed geocode response")
)

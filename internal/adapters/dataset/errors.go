package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrRead              = errors.New("read dataset failed")
	ErrDecode            = errors.New("decode dataset failed")
)

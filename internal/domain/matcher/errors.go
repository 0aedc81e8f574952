package matcher

import "errors"

// Sentinel kinds for rule set construction.
var (
	ErrUnknownRule   = errors.New("unknown matcher rule")
	ErrDuplicateRule = errors.New("duplicate matcher rule")
)

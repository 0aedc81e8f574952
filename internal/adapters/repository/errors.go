package repository

import "errors"

// Sentinel kinds for state store errors.
var (
	ErrStateNotFound = errors.New("reconciliation state not found")
	ErrCorruptState  = errors.New("reconciliation state unreadable")
	ErrWrite         = errors.New("write state document failed")
)

package service

import "errors"

// Sentinel kinds for run errors.
var (
	ErrLoadInput = errors.New("load run input failed")
	ErrLoadState = errors.New("load reconciliation state failed")
	ErrEngine    = errors.New("build matching engine failed")
	ErrMatch     = errors.New("matching failed")
)

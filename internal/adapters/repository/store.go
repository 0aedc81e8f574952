// Package repository persists reconciliation state between runs.
package repository

import (
	"context"

	"github.com/okian/venuematch/internal/domain/model"
)

// Document names, also used as metric labels.
const (
	DocMatched   = "matched"
	DocUnmatched = "unmatched"
	DocFinal     = "final"
)

// Store provides read/write access to the reconciliation state.
type Store interface {
	// LoadState returns the persisted state.
	// Returns ErrStateNotFound if nothing has been persisted yet.
	LoadState(ctx context.Context) (*model.State, error)

	// SaveMatched replaces the matched document.
	SaveMatched(ctx context.Context, matched []model.MatchRecord) error
	// SaveUnmatched replaces the unmatched document.
	SaveUnmatched(ctx context.Context, unmatched []string) error
	// SaveFinal replaces the denormalized export.
	SaveFinal(ctx context.Context, final []model.FinalVenue) error
}

// Paths locates the documents of a FileStore.
type Paths struct {
	Matched   string
	Unmatched string
	Final     string
}

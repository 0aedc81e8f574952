// Package matching resolves venue names to canonical rooms. Two strategies
// share the Engine contract: LocalEngine applies the matcher rules to the
// room registry, RemoteEngine asks the campus geocoding service.
package matching

import (
	"context"

	"github.com/okian/venuematch/internal/domain/model"
)

// Engine names.
const (
	EngineLocal  = "local"
	EngineRemote = "remote"
)

// Result partitions the venues handed to an engine.
type Result struct {
	Matched   []model.MatchRecord
	Unmatched []string
}

// Engine resolves a list of venues.
type Engine interface {
	// Name identifies the strategy, e.g. "local" or "remote".
	Name() string
	// Match partitions venues into matched and unmatched. Every input venue
	// appears exactly once in the result.
	Match(ctx context.Context, venues []string) (Result, error)
}

// Geocoder submits one batch to the geocoding service.
type Geocoder interface {
	GeocodeBatch(ctx context.Context, records []model.GeocodeRecord) ([]model.GeocodeCandidate, error)
}

// Finder looks up the network feature for a located address. A nil feature
// with a nil error means the service had nothing for it.
type Finder interface {
	Find(ctx context.Context, address string) (*model.NetworkFeature, error)
}

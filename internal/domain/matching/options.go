package matching

import (
	"github.com/okian/venuematch/internal/domain/matcher"
	"github.com/okian/venuematch/pkg/logger"
)

// LocalOption applies a configuration option to the LocalEngine.
type LocalOption func(*LocalEngine)

// WithRules replaces the default rule set. Order is priority order.
func WithRules(rules []matcher.Rule) LocalOption {
	return func(e *LocalEngine) {
		if len(rules) > 0 {
			e.rules = rules
		}
	}
}

// WithLocalLogger sets a custom logger for the local engine.
func WithLocalLogger(l logger.Logger) LocalOption {
	return func(e *LocalEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// RemoteOption applies a configuration option to the RemoteEngine.
type RemoteOption func(*RemoteEngine)

// WithBatchSize sets how many venues go into one geocode request.
func WithBatchSize(size int) RemoteOption {
	return func(e *RemoteEngine) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// WithMinScore sets the acceptance threshold; a candidate must score
// strictly above it.
func WithMinScore(score float64) RemoteOption {
	return func(e *RemoteEngine) {
		if score >= 0 {
			e.minScore = score
		}
	}
}

// WithEnrichConcurrency bounds the number of in-flight network lookups.
func WithEnrichConcurrency(n int) RemoteOption {
	return func(e *RemoteEngine) {
		if n > 0 {
			e.enrichConcurrency = n
		}
	}
}

// WithFinder enables enrichment of accepted matches.
func WithFinder(f Finder) RemoteOption {
	return func(e *RemoteEngine) {
		e.finder = f
	}
}

// WithRemoteLogger sets a custom logger for the remote engine.
func WithRemoteLogger(l logger.Logger) RemoteOption {
	return func(e *RemoteEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

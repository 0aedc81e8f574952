// Package reconcile decides what a run works on and folds its results into
// the cumulative state.
//
// Matched venues accumulate across runs. Unmatched venues are replaced by
// each run's leftovers. After Merge no venue is in both collections.
package reconcile

import (
	"fmt"

	"github.com/okian/venuematch/internal/domain/dedupe"
	"github.com/okian/venuematch/internal/domain/matching"
	"github.com/okian/venuematch/internal/domain/model"
)

// Mode selects how the working set is chosen.
type Mode struct {
	// RematchAll discards prior state and works on the full source list.
	RematchAll bool
	// IncludeNewVenues adds source venues absent from prior state to an
	// incremental run.
	IncludeNewVenues bool
}

// Plan is the input of one run.
type Plan struct {
	// Working is the list handed to the engine.
	Working []string
	// Base is the matched state new matches are appended to.
	Base []model.MatchRecord
	// Full is true when the run starts from the source list.
	Full bool
	// Added counts source venues pulled into an incremental run.
	Added int
}

// NewPlan chooses the working set. prior is nil when no state has ever been
// persisted, in which case the run starts from the source list.
func NewPlan(source []string, prior *model.State, mode Mode) Plan {
	if mode.RematchAll || prior == nil {
		return Plan{
			Working: dedupe.Unique(source),
			Base:    []model.MatchRecord{},
			Full:    true,
		}
	}

	known := dedupe.New(dedupe.WithCapacity(len(prior.Matched) + len(prior.Unmatched)))
	for _, m := range prior.Matched {
		known.SeenAndRecord(m.Venue)
	}

	working := make([]string, 0, len(prior.Unmatched))
	for _, v := range prior.Unmatched {
		if !known.SeenAndRecord(v) {
			working = append(working, v)
		}
	}

	added := 0
	if mode.IncludeNewVenues {
		for _, v := range source {
			if !known.SeenAndRecord(v) {
				working = append(working, v)
				added++
			}
		}
	}

	base := make([]model.MatchRecord, len(prior.Matched))
	copy(base, prior.Matched)

	return Plan{Working: working, Base: base, Added: added}
}

// Merge appends the run's matches to base and takes the run's leftovers as
// the new unmatched list. A venue already in base keeps its earlier match.
func Merge(base []model.MatchRecord, res matching.Result) model.State {
	matched := dedupe.New(dedupe.WithCapacity(len(base) + len(res.Matched)))

	out := model.State{
		Matched:   make([]model.MatchRecord, 0, len(base)+len(res.Matched)),
		Unmatched: make([]string, 0, len(res.Unmatched)),
	}
	for _, m := range base {
		if !matched.SeenAndRecord(m.Venue) {
			out.Matched = append(out.Matched, m)
		}
	}
	for _, m := range res.Matched {
		if !matched.SeenAndRecord(m.Venue) {
			out.Matched = append(out.Matched, m)
		}
	}

	leftovers := dedupe.New(dedupe.WithCapacity(len(res.Unmatched)))
	for _, v := range res.Unmatched {
		if matched.Contains(v) || leftovers.SeenAndRecord(v) {
			continue
		}
		out.Unmatched = append(out.Unmatched, v)
	}
	return out
}

// Check verifies that state partitions universe: every venue of universe is
// in exactly one collection and nothing else is. It returns ErrOverlap or
// ErrCoverage.
func Check(state model.State, universe []string) error {
	matched := dedupe.New(dedupe.WithCapacity(len(state.Matched)))
	for _, m := range state.Matched {
		matched.SeenAndRecord(m.Venue)
	}
	unmatched := dedupe.Of(state.Unmatched...)

	for _, v := range state.Unmatched {
		if matched.Contains(v) {
			return fmt.Errorf("%w: %q", ErrOverlap, v)
		}
	}

	all := dedupe.Of(universe...)
	for _, v := range universe {
		if !matched.Contains(v) && !unmatched.Contains(v) {
			return fmt.Errorf("%w: %q never classified", ErrCoverage, v)
		}
	}
	for _, m := range state.Matched {
		if !all.Contains(m.Venue) {
			return fmt.Errorf("%w: %q not in source", ErrCoverage, m.Venue)
		}
	}
	for _, v := range state.Unmatched {
		if !all.Contains(v) {
			return fmt.Errorf("%w: %q not in source", ErrCoverage, v)
		}
	}
	return nil
}

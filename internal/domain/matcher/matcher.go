// Package matcher defines the predicate rules that decide whether an
// informal venue name refers to a canonical room.
//
// Rules are pure: no shared state, no side effects. A rule set is ordered,
// and appending a rule never changes what an earlier rule decides.
package matcher

import (
	"fmt"

	"github.com/okian/venuematch/internal/domain/model"
)

// Rule tests whether venue corresponds to room.
type Rule interface {
	// Name identifies the rule in logs, metrics and configuration.
	Name() string
	// Match reports whether venue names room.
	Match(venue string, room model.Room) bool
}

// Func adapts a plain predicate to a Rule.
type Func struct {
	name string
	fn   func(venue string, room model.Room) bool
}

// NewFunc names a predicate.
func NewFunc(name string, fn func(venue string, room model.Room) bool) Func {
	return Func{name: name, fn: fn}
}

// Name implements Rule.
func (f Func) Name() string { return f.name }

// Match implements Rule.
func (f Func) Match(venue string, room model.Room) bool { return f.fn(venue, room) }

// Rule names accepted in configuration.
const (
	NameExactCode      = "exact-code"
	NameLectureTheatre = "lecture-theatre"
	NameSegmentMerge   = "segment-merge"
	NameSDE            = "sde"
)

// DefaultRules returns the rule set in priority order: the precise
// exact-code rule first, heuristic transforms after it, building-specific
// composites last.
func DefaultRules() []Rule {
	return []Rule{
		ExactCode(),
		LectureTheatre(),
		SegmentMerge(),
		SDE(),
	}
}

// FromNames builds a rule set from configured names, keeping their order.
// An empty list yields DefaultRules.
func FromNames(names []string) ([]Rule, error) {
	if len(names) == 0 {
		return DefaultRules(), nil
	}

	builders := map[string]func() Rule{
		NameExactCode:      func() Rule { return ExactCode() },
		NameLectureTheatre: func() Rule { return LectureTheatre() },
		NameSegmentMerge:   func() Rule { return SegmentMerge() },
		NameSDE:            func() Rule { return SDE() },
	}

	rules := make([]Rule, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		build, ok := builders[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, name)
		}
		seen[name] = struct{}{}
		rules = append(rules, build())
	}
	return rules, nil
}

// Package dedupe tracks venue names already seen in a run.
package dedupe

import (
	"sync"
)

// Deduper records seen names so each is handled at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if name was seen and records it if not.
	// Returns true if name was already seen, false if it was newly recorded.
	SeenAndRecord(name string) bool

	// Contains reports whether name was recorded, without recording it.
	Contains(name string) bool

	Size() int
}

// Set is an in-memory Deduper. It is safe for concurrent use.
type Set struct {
	mu       sync.RWMutex
	seen     map[string]struct{}
	capacity int
}

// New creates an empty Set.
func New(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}
	s.seen = make(map[string]struct{}, s.capacity)
	return s
}

// Of creates a Set holding names.
func Of(names ...string) *Set {
	s := New(WithCapacity(len(names)))
	for _, n := range names {
		s.seen[n] = struct{}{}
	}
	return s
}

// SeenAndRecord implements Deduper.
func (s *Set) SeenAndRecord(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[name]; ok {
		return true
	}
	s.seen[name] = struct{}{}
	return false
}

// Contains implements Deduper.
func (s *Set) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[name]
	return ok
}

// Size implements Deduper.
func (s *Set) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

// Unique returns names without repeats, keeping first occurrences in order.
func Unique(names []string) []string {
	s := New(WithCapacity(len(names)))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !s.SeenAndRecord(n) {
			out = append(out, n)
		}
	}
	return out
}

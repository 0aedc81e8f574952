// Package dedupe tracks venue names already seen in a run.
package dedupe

// Option applies a configuration option to the Set.
type Option func(*Set)

// WithCapacity pre-sizes the set for n names.
func WithCapacity(n int) Option {
	return func(s *Set) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// Package rng provides a deterministic pseudo-random stream with value
// semantics: every operation returns the drawn value together with the
// advanced state, and never mutates the receiver. A State captured before an
// operation can be stored and restored later bit-for-bit, which is what makes
// snapshot-based backtracking in the solver correct.
package rng

// State is one position in a pseudo-random stream. The zero value is a valid
// state (equivalent to Seed(0)). States are plain values; copying one is a
// full, independent snapshot of the stream.
type State struct {
	x uint64
}

// Seed returns the initial State for the given seed. Equal seeds yield
// identical streams on every platform.
func Seed(seed int64) State {
	return State{x: uint64(seed)}
}

// next advances the stream by one SplitMix64 step and returns the raw output.
// The constants are the canonical SplitMix64 multipliers/finalizer (Vigna 2014).
func (s State) next() (uint64, State) {
	x := s.x + 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return z, State{x: x}
}

// Float64 returns a value in [0, 1) and the advanced state.
func (s State) Float64() (float64, State) {
	v, next := s.next()
	return float64(v>>11) / (1 << 53), next
}

// IntRange returns an integer in [lo, hi] inclusive and the advanced state.
// If lo > hi the bounds are swapped. The state advances exactly one step
// regardless of the span.
func (s State) IntRange(lo, hi int) (int, State) {
	if lo > hi {
		lo, hi = hi, lo
	}
	v, next := s.next()
	span := uint64(hi-lo) + 1
	return lo + int(v%span), next
}

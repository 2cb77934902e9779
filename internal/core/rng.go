package core

// RNG is a deterministic pseudo-random number generator (PCG-XSH-RR 32).
// Unlike math/rand it exposes its full counter state, so a run can be
// checkpointed and resumed with bit-identical draw sequences.
type RNG struct {
	state uint64
	inc   uint64
}

const pcgMultiplier = 6364136223846793005

// NewRNG creates an RNG seeded like PCG's seed/stream initialization.
func NewRNG(seed, stream uint64) *RNG {
	r := &RNG{inc: stream<<1 | 1}
	r.state = 0
	r.Uint32()
	r.state += seed
	r.Uint32()
	return r
}

// RNGState is the serializable counter state of an RNG.
type RNGState struct {
	State uint64 `json:"state"`
	Inc   uint64 `json:"inc"`
}

// State returns the current counter state.
func (r *RNG) State() RNGState {
	return RNGState{State: r.state, Inc: r.inc}
}

// Restore resets the RNG to a previously captured counter state.
func (r *RNG) Restore(s RNGState) {
	r.state = s.State
	r.inc = s.Inc
}

// Valid reports whether s is a usable PCG state. The increment must be odd;
// an all-zero state means the field was never populated.
func (s RNGState) Valid() bool {
	return s.Inc&1 == 1
}

// Uint32 returns the next random uint32 and advances the counter.
func (r *RNG) Uint32() uint32 {
	old := r.state
	r.state = old*pcgMultiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return xorshifted>>rot | xorshifted<<((-rot)&31)
}

// Uint64 returns the next random uint64.
func (r *RNG) Uint64() uint64 {
	return uint64(r.Uint32())<<32 | uint64(r.Uint32())
}

// IntN returns a random int in [0, n). Returns 0 for n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint32() % uint32(n))
}

// Float32 returns a random float32 in [0, 1).
func (r *RNG) Float32() float32 {
	return float32(r.Uint32()>>8) / float32(1<<24)
}

// Range32 returns a random float32 in [lo, hi).
func (r *RNG) Range32(lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

package core

// rngIncrement is the odd Weyl constant added to the state before each draw.
const rngIncrement uint32 = 0x6D2B79F5

// RNG is a self-contained mulberry32 generator: a 32-bit state advanced by a
// fixed odd increment and scrambled with multiply/xor/shift rounds. Every
// simulation run owns its own RNG; nothing here is shared between instances.
type RNG struct {
	state uint32
}

// NewRNG creates a deterministic RNG using the provided seed. Only the low 32
// bits of the seed are used.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Seed resets the generator state.
func (r *RNG) Seed(seed int64) { r.state = uint32(seed) }

// Uint32 advances the state and returns the next scrambled 32-bit value.
func (r *RNG) Uint32() uint32 {
	r.state += rngIncrement
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

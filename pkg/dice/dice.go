package dice

import "math/rand"

// Roller supplies randomness for combat resolution and flight checks.
// Implementations must be substitutable with a deterministic source so
// combat math can be tested without chance.
type Roller interface {
	// Roll returns a uniform integer in [1, sides].
	Roll(sides int) int
	// Range returns a uniform integer in [min, max], inclusive.
	Range(min, max int) int
	// Chance returns true with probability p. Values outside [0, 1]
	// are treated as never and always.
	Chance(p float64) bool
}

type seededRoller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller backed by a seeded math/rand source.
// The same seed always produces the same sequence of results.
func NewRoller(seed int64) Roller {
	return &seededRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *seededRoller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}
	return r.rng.Intn(sides) + 1
}

func (r *seededRoller) Range(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r *seededRoller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.rng.Float64() < p
}

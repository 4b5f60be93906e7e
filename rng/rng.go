// Package rng implements the deterministic pseudo-random generator the
// engine draws from. It is a two-seed Lécuyer combined generator; given
// the same seed and the same call order it reproduces the same sequence
// on every platform, which is what makes turn replays byte-identical.
package rng

// Generator produces deterministic pseudo-random draws. It is not safe
// for concurrent use; the turn executor is the only writer by contract.
type Generator struct {
	seedA int64
	seedB int64
}

// New creates a Generator from a game seed. The low bits of the seed
// select two starting primes and the next bits choose a number of
// warm-up rounds, so nearby seeds still diverge quickly.
func New(seed int64) *Generator {
	index1 := int(seed & 0x1F)
	index2 := int((seed >> 5) & 0x1F)

	// One of the two indexes uses the upper half of the primes table,
	// picked by bit 10 of the seed.
	if (seed>>10)&1 == 1 {
		index1 += 32
	} else {
		index2 += 32
	}

	rounds := int((seed>>11)&0x3F) + 1

	g := &Generator{
		seedA: int64(primes[index1]),
		seedB: int64(primes[index2]),
	}
	for i := 0; i < rounds; i++ {
		g.next()
	}
	return g
}

// State is the full serializable generator state.
type State struct {
	SeedA int64 `json:"seed_a"`
	SeedB int64 `json:"seed_b"`
}

// Restore rebuilds a Generator from a previously exported State.
func Restore(s State) *Generator {
	return &Generator{seedA: s.SeedA, seedB: s.SeedB}
}

// State exports the generator state for snapshots. Restoring it resumes
// the sequence exactly where it left off.
func (g *Generator) State() State {
	return State{SeedA: g.seedA, SeedB: g.seedB}
}

// next advances both seeds and combines them into a value in [0, 2^32).
func (g *Generator) next() int64 {
	seedApartA := (g.seedA % 53668) * 40014
	seedApartB := (g.seedA / 53668) * 12211
	newSeedA := seedApartA - seedApartB

	seedBpartA := (g.seedB % 52774) * 40692
	seedBpartB := (g.seedB / 52774) * 3791
	newSeedB := seedBpartA - seedBpartB

	if newSeedA < 0 {
		newSeedA += 0x7fffffab
	}
	if newSeedB < 0 {
		newSeedB += 0x7fffff07
	}

	g.seedA = newSeedA
	g.seedB = newSeedB

	n := g.seedA - g.seedB
	if g.seedA < g.seedB {
		n += 0x100000000
	}
	return n
}

// UniformInt returns a draw in [0, n). Panics if n is not positive;
// callers always pass fixed rule constants.
func (g *Generator) UniformInt(n int) int {
	if n <= 0 {
		panic("rng: UniformInt needs a positive bound")
	}
	return int(g.next() % int64(n))
}

// Percent returns a draw in [0.0, 1.0) built from the top 24 bits of
// one generator step.
func (g *Generator) Percent() float64 {
	return float64(g.next()>>8) / float64(1<<24)
}

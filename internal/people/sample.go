package people

import "math/rand/v2"

// Sample returns min(n, len(items)) distinct elements of items chosen
// uniformly at random. items is not modified.
func Sample[T any](rng *rand.Rand, items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	if len(out) <= n {
		return out
	}

	// Partial Fisher-Yates: only the first n positions need to be settled
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}

// NewRand returns a generator seeded from the runtime's random source
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SeededRand returns a factory whose generators all start from the same seed.
func SeededRand(seed uint64) func() *rand.Rand {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

package quiz

import "math/rand"

// Draw picks min(n, len(pool)) distinct entries from pool uniformly at
// random without replacement: an unbiased partial Fisher-Yates shuffle,
// not sampling with replacement. pool itself is never mutated.
func Draw(rng *rand.Rand, pool []string, n int) []string {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}

	remaining := make([]string, len(pool))
	copy(remaining, pool)

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(len(remaining))
		out = append(out, remaining[j])
		remaining[j] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return out
}

package services

import "math/rand/v2"

// sample draws k distinct elements of items uniformly at random using a
// partial Fisher-Yates shuffle over a copy of the whole slice. intN must
// return a uniform integer in [0, n). k must not exceed len(items).
func sample[T any](items []T, k int, intN func(n int) int) []T {
	if intN == nil {
		intN = rand.IntN
	}

	pool := make([]T, len(items))
	copy(pool, items)

	for i := 0; i < k; i++ {
		j := i + intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

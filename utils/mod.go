package utils

import "golang.org/x/exp/rand"

// Draw returns a uniformly distributed integer in [0, maxExcluded).
func Draw(rng *rand.Rand, maxExcluded int) int {
	return rng.Intn(maxExcluded)
}

// Shuffle returns a shuffled copy of deck (Fisher-Yates); deck is left untouched.
func Shuffle[T any](rng *rand.Rand, deck []T) []T {
	shuffled := make([]T, len(deck))
	copy(shuffled, deck)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := Draw(rng, i+1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Min is a plain scan; it panics on an empty slice.
func Min(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func Max(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// IndexesOf returns the indexes of every occurrence of item.
func IndexesOf[T comparable](slice []T, item T) []int {
	indexes := []int{}
	for i, v := range slice {
		if v == item {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func Count[T comparable](slice []T, item T) int {
	count := 0
	for _, v := range slice {
		if v == item {
			count++
		}
	}
	return count
}

package store

import (
	"cmp"
	"slices"
)

// TopByRelevance returns up to n items sorted by relevance descending.
// The sort is stable: ties keep their original insertion order. Papers and
// findings share this one path so tie-break behavior never diverges.
func TopByRelevance[T any](items []T, n int, relevance func(T) float64) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(relevance(b), relevance(a))
	})
	if n >= 0 && len(out) > n {
		out = out[:n:n]
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

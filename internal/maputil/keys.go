// Package maputil provides small helpers for working with maps.
package maputil

import (
	"cmp"
	"slices"
)

// SortedKeys returns the keys of m in ascending order. The result is never
// nil, so it encodes as an empty list.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// KeySet builds a set from items using key.
func KeySet[T any, K comparable](items []T, key func(T) K) map[K]T {
	set := make(map[K]T, len(items))
	for _, item := range items {
		set[key(item)] = item
	}
	return set
}

package merge

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Mergeable is implemented by values that can be combined with another value
// of the same type into a new value.
type Mergeable[T any] interface {
	MergeWith(other T) (T, error)
}

// Keyed groups items by key and folds each group with combine. Items inside a
// group are folded in the order they were seen. The result is sorted by key.
// A group with a single item is returned as is.
func Keyed[K cmp.Ordered, T any](items []T, key func(T) K, combine func(T, T) (T, error)) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	groups := make(map[K]T, len(items))
	keys := make([]K, 0, len(items))
	for _, item := range items {
		k := key(item)
		existing, ok := groups[k]
		if !ok {
			groups[k] = item
			keys = append(keys, k)
			continue
		}
		merged, err := combine(existing, item)
		if err != nil {
			return nil, err
		}
		groups[k] = merged
	}

	slices.Sort(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out, nil
}

// Fold merges items left to right. Folding zero items returns the zero value
// of T; folding one item returns it unchanged.
func Fold[T Mergeable[T]](items ...T) (T, error) {
	var acc T
	if len(items) == 0 {
		return acc, nil
	}
	acc = items[0]
	for _, item := range items[1:] {
		merged, err := acc.MergeWith(item)
		if err != nil {
			var zero T
			return zero, err
		}
		acc = merged
	}
	return acc, nil
}

// FoldTree merges items as a pairwise reduction tree, merging the pairs of
// each level concurrently. The context is checked between levels.
func FoldTree[T Mergeable[T]](ctx context.Context, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, nil
	}

	level := slices.Clone(items)
	for len(level) > 1 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		next := make([]T, (len(level)+1)/2)
		g, gctx := errgroup.WithContext(ctx)
		for i := range next {
			left := 2 * i
			if left+1 >= len(level) {
				next[i] = level[left]
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				merged, err := level[left].MergeWith(level[left+1])
				if err != nil {
					return err
				}
				next[i] = merged
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return zero, err
		}
		level = next
	}
	return level[0], nil
}

// Union returns the sorted, deduplicated union of sets under compare.
// The result never aliases any input.
func Union[T any](compare func(T, T) int, sets ...[]T) []T {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	if n == 0 {
		return nil
	}
	all := make([]T, 0, n)
	for _, s := range sets {
		all = append(all, s...)
	}
	slices.SortStableFunc(all, compare)
	return slices.CompactFunc(all, func(a, b T) bool { return compare(a, b) == 0 })
}

// Normalize returns a sorted, deduplicated copy of items.
func Normalize[T any](compare func(T, T) int, items []T) []T {
	return Union(compare, items)
}

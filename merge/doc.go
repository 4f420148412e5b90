// Package merge provides the generic keyed merge used by every metadata
// document kind.
//
// A record that can be combined with another record of the same type
// implements [Mergeable]. Documents are merged by grouping their records by
// key with [Keyed] and folding each group through the record's combine
// function. Member sets are kept in canonical order with [Union] and
// [Normalize].
//
// All functions are pure: inputs are never modified and every result is a
// freshly allocated slice.
//
// # Folding many documents
//
// [Fold] combines documents left to right. [FoldTree] reduces them pairwise
// and merges each level concurrently; because merges are commutative and
// associative both produce the same result.
//
//	docs := []metadata.ClassConfig{a, b, c}
//	merged, err := merge.FoldTree(ctx, docs)
package merge

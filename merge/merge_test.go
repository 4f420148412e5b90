package merge

import (
	"cmp"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flags is a minimal Mergeable used to exercise the folds.
type flags struct {
	name string
	bits uint8
}

var errMismatch = errors.New("mismatch")

func (f flags) MergeWith(other flags) (flags, error) {
	if f.name != other.name {
		return flags{}, errMismatch
	}
	return flags{name: f.name, bits: f.bits | other.bits}, nil
}

type entry struct {
	key   string
	value string
}

func concat(a, b entry) (entry, error) {
	return entry{key: a.key, value: a.value + b.value}, nil
}

func TestKeyed(t *testing.T) {
	t.Run("groups by key and sorts", func(t *testing.T) {
		items := []entry{{"b", "1"}, {"a", "2"}, {"b", "3"}, {"c", "4"}, {"a", "5"}}
		got, err := Keyed(items, func(e entry) string { return e.key }, concat)
		require.NoError(t, err)
		assert.Equal(t, []entry{{"a", "25"}, {"b", "13"}, {"c", "4"}}, got)
	})

	t.Run("single element groups pass through", func(t *testing.T) {
		combine := func(a, b entry) (entry, error) {
			t.Fatalf("combine should not be called for unique keys")
			return a, nil
		}
		got, err := Keyed([]entry{{"z", "1"}, {"y", "2"}}, func(e entry) string { return e.key }, combine)
		require.NoError(t, err)
		assert.Equal(t, []entry{{"y", "2"}, {"z", "1"}}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := Keyed(nil, func(e entry) string { return e.key }, concat)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("combine error stops the merge", func(t *testing.T) {
		boom := errors.New("boom")
		fail := func(a, b entry) (entry, error) { return entry{}, boom }
		_, err := Keyed([]entry{{"a", "1"}, {"a", "2"}}, func(e entry) string { return e.key }, fail)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("does not modify input", func(t *testing.T) {
		items := []entry{{"b", "1"}, {"a", "2"}}
		_, err := Keyed(items, func(e entry) string { return e.key }, concat)
		require.NoError(t, err)
		assert.Equal(t, []entry{{"b", "1"}, {"a", "2"}}, items)
	})
}

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		items []flags
		want  flags
	}{
		{"no items", nil, flags{}},
		{"one item", []flags{{"App", 1}}, flags{"App", 1}},
		{"three items", []flags{{"App", 1}, {"App", 2}, {"App", 8}}, flags{"App", 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fold(tt.items...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("error", func(t *testing.T) {
		_, err := Fold(flags{"A", 1}, flags{"B", 2})
		assert.ErrorIs(t, err, errMismatch)
	})
}

func TestFoldTree(t *testing.T) {
	ctx := context.Background()

	t.Run("matches Fold", func(t *testing.T) {
		for n := 0; n <= 9; n++ {
			items := make([]flags, n)
			for i := range items {
				items[i] = flags{name: "App", bits: uint8(1) << (i % 8)}
			}
			want, err := Fold(items...)
			require.NoError(t, err)
			got, err := FoldTree(ctx, items)
			require.NoError(t, err)
			assert.Equal(t, want, got, "n=%d", n)
		}
	})

	t.Run("propagates merge errors", func(t *testing.T) {
		items := []flags{{"A", 1}, {"A", 2}, {"B", 4}, {"B", 8}, {"C", 16}}
		_, err := FoldTree(ctx, items)
		assert.ErrorIs(t, err, errMismatch)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := FoldTree(cctx, []flags{{"A", 1}, {"A", 2}})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("does not modify input", func(t *testing.T) {
		items := []flags{{"A", 1}, {"A", 2}, {"A", 4}}
		_, err := FoldTree(ctx, items)
		require.NoError(t, err)
		assert.Equal(t, []flags{{"A", 1}, {"A", 2}, {"A", 4}}, items)
	})
}

func TestUnion(t *testing.T) {
	a := []string{"run", "<init>"}
	b := []string{"start", "run"}

	got := Union(strings.Compare, a, b)
	assert.Equal(t, []string{"<init>", "run", "start"}, got)
	assert.Equal(t, []string{"run", "<init>"}, a, "inputs must be unchanged")

	assert.Nil(t, Union[int](cmp.Compare[int]))
	assert.Nil(t, Union(cmp.Compare[int], nil, []int{}))

	got[0] = "changed"
	assert.Equal(t, "run", a[0], "result must not alias input")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Normalize(cmp.Compare[int], []int{3, 1, 2, 3, 1}))
}

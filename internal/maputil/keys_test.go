package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]bool
		expected []string
	}{
		{
			name:     "class names",
			input:    map[string]bool{"java.util.List": true, "com.example.App": true, "java.lang.String": true},
			expected: []string{"com.example.App", "java.lang.String", "java.util.List"},
		},
		{
			name:     "single key",
			input:    map[string]bool{"only": true},
			expected: []string{"only"},
		},
		{
			name:     "empty map",
			input:    map[string]bool{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedKeys(tt.input)
			assert.Equal(t, tt.expected, got, "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_IntKeys(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, SortedKeys(map[int]string{3: "c", 1: "a", 2: "b"}))
}

func TestKeySet(t *testing.T) {
	type method struct{ name, sig string }
	items := []method{{"run", "run()"}, {"init", "<init>(int)"}, {"run", "run()"}}

	set := KeySet(items, func(m method) string { return m.sig })
	assert.Len(t, set, 2)
	assert.Equal(t, "init", set["<init>(int)"].name)
	assert.Equal(t, []string{"<init>(int)", "run()"}, SortedKeys(set))

	assert.Empty(t, KeySet[method, string](nil, func(m method) string { return m.sig }))
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"joi", "join"},
		{"jion", "join"},
		{"prase", "parse"},
		{"parce", "parse"},
		{"dif", "diff"},
		{"merge-dri", "merge-dir"},
		{"mergedir", "merge-dir"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"validate", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("diff", "diff"))
	assert.Equal(t, 4, editDistance("", "join"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
}

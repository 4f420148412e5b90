package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMergeDir_RequiresOutput(t *testing.T) {
	err := HandleMergeDir([]string{agentOutput})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-o")
}

func TestHandleMergeDir_RequiresDir(t *testing.T) {
	err := HandleMergeDir([]string{"-o", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 directory")
}

func TestHandleMergeDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged")
	require.NoError(t, HandleMergeDir([]string{"-q", "-o", out, agentOutput}))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"jni-config.json",
		"reflect-config.json",
		"proxy-config.json",
		"resource-config.json",
	}, names)
}

func TestHandleMergeDir_Empty(t *testing.T) {
	err := HandleMergeDir([]string{"-q", "-o", filepath.Join(t.TempDir(), "out"), t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no metadata documents found")
}

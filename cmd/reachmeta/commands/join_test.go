package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reachmeta/parser"
)

func TestSetupJoinFlags(t *testing.T) {
	fs, flags := SetupJoinFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Output)
		assert.Empty(t, flags.Kind)
		assert.False(t, flags.CanonicalTypes)
		assert.False(t, flags.StrictKinds)
		assert.Equal(t, runtime.GOMAXPROCS(0), flags.Parallelism)
		assert.False(t, flags.Quiet)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-o", "out.json", "--kind", "jni", "--strict-kinds", "-j", "2", "-q", "a.json", "b.json"}
		require.NoError(t, fs.Parse(args))
		assert.Equal(t, "out.json", flags.Output)
		assert.Equal(t, "jni", flags.Kind)
		assert.True(t, flags.StrictKinds)
		assert.Equal(t, 2, flags.Parallelism)
		assert.True(t, flags.Quiet)
		assert.Equal(t, 2, fs.NArg())
	})
}

func TestHandleJoin_NoFiles(t *testing.T) {
	err := HandleJoin([]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 input file")
}

func TestHandleJoin_InvalidKind(t *testing.T) {
	err := HandleJoin([]string{"--kind", "serialization", "a.json"})
	assert.Error(t, err)
}

func TestHandleJoin_WritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "jni-config.json")
	err := HandleJoin([]string{
		"-q", "-o", out,
		filepath.Join(agentOutput, "run-1", "jni-config.json"),
		filepath.Join(agentOutput, "run-2", "jni-config.json"),
	})
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	result, err := parser.ParseWithOptions(parser.WithFilePath(out))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Stats.Classes)
}

func TestHandleJoin_KindMismatch(t *testing.T) {
	err := HandleJoin([]string{
		"-q", "-o", filepath.Join(t.TempDir(), "out.json"),
		filepath.Join(agentOutput, "run-1", "jni-config.json"),
		filepath.Join(agentOutput, "run-1", "proxy-config.json"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind mismatch")
}

func TestHandleJoin_InvalidParallelism(t *testing.T) {
	err := HandleJoin([]string{"-q", "-j", "0", filepath.Join(agentOutput, "run-1", "jni-config.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parallelism")
}

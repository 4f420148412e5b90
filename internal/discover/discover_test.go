package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reachmeta/metadata"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func rels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Rel
	}
	return out
}

func TestDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "run-2/jni-config.json", "[]")
	writeFile(t, root, "run-1/jni-config.json", "[]")
	writeFile(t, root, "run-1/reflect-config.yaml", "[]")
	writeFile(t, root, "run-1/serialization-config.json", "[]")
	writeFile(t, root, "run-1/notes.txt", "")
	writeFile(t, root, ".cache/jni-config.json", "[]")
	writeFile(t, root, "tmp/proxy-config.json", "[]")
	writeFile(t, root, "run-3/resource-config.json", "{}")
	writeFile(t, root, IgnoreFile, "tmp/\nrun-3/resource-config.json\n")

	entries, err := Documents(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"run-1/jni-config.json",
		"run-1/reflect-config.yaml",
		"run-2/jni-config.json",
	}, rels(entries))
	assert.Equal(t, filepath.Join(root, "run-1", "jni-config.json"), entries[0].Path)
	assert.Equal(t, metadata.KindReflect, entries[1].Kind)
}

func TestDocuments_NoIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tmp/proxy-config.json", "[]")

	entries, err := Documents(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp/proxy-config.json"}, rels(entries))
}

func TestDocuments_MissingRoot(t *testing.T) {
	_, err := Documents(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDocuments_Testdata(t *testing.T) {
	entries, err := Documents("../../testdata/agent-output")
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Rel, "scratch/", "ignored by .reachmetaignore")
	}

	groups := ByKind(entries)
	assert.Len(t, groups[metadata.KindJNI], 2)
	assert.Len(t, groups[metadata.KindReflect], 2)
	assert.Len(t, groups[metadata.KindProxy], 2)
	assert.Len(t, groups[metadata.KindResource], 1)
}

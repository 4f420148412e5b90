package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath cleans an output path, makes it absolute and refuses
// to follow a symlink at the final component. Paths that do not exist yet
// are accepted.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("refusing to write through symlink: %s", abs)
		}
	case os.IsNotExist(err):
	default:
		return "", fmt.Errorf("cannot stat path: %w", err)
	}
	return abs, nil
}

// EnsureOutputDir sanitizes dir and creates it with OwnerDirectory
// permissions if it does not exist.
func EnsureOutputDir(dir string) (string, error) {
	abs, err := SanitizeOutputPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, OwnerDirectory); err != nil {
		return "", fmt.Errorf("cannot create output directory: %w", err)
	}
	return abs, nil
}

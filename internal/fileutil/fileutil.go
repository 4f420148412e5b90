// Package fileutil holds file permission constants and write helpers shared
// by the joiner and the CLI.
package fileutil

import (
	"fmt"
	"os"
)

// OwnerReadWrite is the permission mode for merged metadata documents.
const OwnerReadWrite os.FileMode = 0o600

// OwnerDirectory is the permission mode for output directories created for
// merged documents.
const OwnerDirectory os.FileMode = 0o750

// WriteOwnerOnly writes data to path with OwnerReadWrite permissions. The mode
// is applied again after writing so a pre-existing file is tightened too.
func WriteOwnerOnly(path string, data []byte) error {
	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(path, OwnerReadWrite); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	return nil
}

// Package discover finds metadata documents in agent output directories.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/erraggy/reachmeta/metadata"
)

// IgnoreFile is the name of the per-directory ignore file. It uses
// .gitignore syntax relative to the directory being scanned.
const IgnoreFile = ".reachmetaignore"

// Entry is a discovered metadata document.
type Entry struct {
	Path string // Path including the scanned root
	Rel  string // Relative to the scanned root
	Kind metadata.Kind
}

// Documents walks root and returns every file whose name identifies a
// metadata kind (jni-config.json, reflect-config.yaml, ...), sorted by
// relative path. Hidden directories, symlinks and paths matched by
// IgnoreFile are skipped.
func Documents(root string) ([]Entry, error) {
	gi := loadIgnore(root)

	var results []Entry
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		kind, ok := metadata.KindFromFileName(d.Name())
		if !ok {
			return nil
		}
		results = append(results, Entry{Path: path, Rel: rel, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Rel < results[j].Rel
	})
	return results, nil
}

// ByKind groups entries by kind, keeping the order of entries.
func ByKind(entries []Entry) map[metadata.Kind][]Entry {
	groups := make(map[metadata.Kind][]Entry)
	for _, e := range entries {
		groups[e.Kind] = append(groups[e.Kind], e)
	}
	return groups
}

func loadIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil
	}
	return gi
}

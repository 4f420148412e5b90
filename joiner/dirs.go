package joiner

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/erraggy/reachmeta/internal/discover"
	"github.com/erraggy/reachmeta/internal/fileutil"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/metaerrors"
	"github.com/erraggy/reachmeta/parser"
)

// DirResult holds one JoinResult per kind found by JoinDirs.
type DirResult struct {
	// Kinds lists the kinds present, in metadata.ValidKinds order
	Kinds []metadata.Kind
	// Results maps each kind to its merged document
	Results map[metadata.Kind]*JoinResult
}

// JoinDirs merges every metadata document found under dirs, one merge per
// kind. Files are selected by name (jni-config.json, reflect-config.yaml,
// ...) and paths matched by a .reachmetaignore file in a directory are
// skipped. Documents are merged in directory order, then path order.
func (j *Joiner) JoinDirs(dirs []string) (*DirResult, error) {
	return j.JoinDirsContext(context.Background(), dirs)
}

// JoinDirsContext is JoinDirs with a caller supplied context.
func (j *Joiner) JoinDirsContext(ctx context.Context, dirs []string) (*DirResult, error) {
	if len(dirs) == 0 {
		return nil, &metaerrors.ConfigError{Option: "dirs", Value: 0, Message: "at least 1 directory is required"}
	}

	groups := make(map[metadata.Kind][]string)
	for _, dir := range dirs {
		entries, err := discover.Documents(dir)
		if err != nil {
			return nil, fmt.Errorf("joiner: failed to scan %s: %w", dir, err)
		}
		if len(entries) == 0 {
			joinerLogger.Warn("joiner: no metadata documents found", "dir", dir)
		}
		for kind, group := range discover.ByKind(entries) {
			for _, e := range group {
				groups[kind] = append(groups[kind], e.Path)
			}
		}
	}
	if len(groups) == 0 {
		return nil, &metaerrors.ConfigError{
			Option:  "dirs",
			Value:   dirs,
			Message: "no metadata documents found",
		}
	}

	out := &DirResult{Results: make(map[metadata.Kind]*JoinResult, len(groups))}
	for _, kind := range metadata.ValidKinds() {
		paths, ok := groups[kind]
		if !ok {
			continue
		}
		cfg := j.config
		cfg.Kind = kind
		result, err := New(cfg).JoinContext(ctx, paths)
		if err != nil {
			return nil, err
		}
		out.Kinds = append(out.Kinds, kind)
		out.Results[kind] = result
	}
	return out, nil
}

// WriteDirResult writes one JSON document per kind into outDir, named by
// kind (e.g. jni-config.json), creating outDir if needed. It returns the
// written paths in kind order.
func WriteDirResult(result *DirResult, outDir string) ([]string, error) {
	if result == nil {
		return nil, fmt.Errorf("joiner: nothing to write")
	}
	dir, err := fileutil.EnsureOutputDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("joiner: %w", err)
	}

	written := make([]string, 0, len(result.Kinds))
	for _, kind := range result.Kinds {
		jr := result.Results[kind]
		data, err := parser.Marshal(jr.Document, parser.SourceFormatJSON)
		if err != nil {
			return written, fmt.Errorf("joiner: %w", err)
		}
		path := filepath.Join(dir, kind.FileName())
		if err := fileutil.WriteOwnerOnly(path, data); err != nil {
			return written, fmt.Errorf("joiner: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Warnings returns the warnings of every kind, in kind order.
func (r *DirResult) Warnings() JoinWarnings {
	var all JoinWarnings
	for _, kind := range r.Kinds {
		all = append(all, r.Results[kind].StructuredWarnings...)
	}
	return all
}

// Sources returns every merged input path, sorted.
func (r *DirResult) Sources() []string {
	var all []string
	for _, kind := range r.Kinds {
		all = append(all, r.Results[kind].Sources...)
	}
	slices.Sort(all)
	return all
}

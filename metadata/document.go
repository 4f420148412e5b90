package metadata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erraggy/reachmeta/merge"
	"github.com/erraggy/reachmeta/metaerrors"
)

// Document is one complete metadata document of a single kind.
// ClassConfig, ProxyConfig and ResourceConfig implement it.
type Document interface {
	// Kind returns the document's kind.
	Kind() Kind
	// Len returns the number of top-level entries.
	Len() int
}

// NewDocument returns an empty document of the given kind.
func NewDocument(kind Kind) (Document, error) {
	switch kind {
	case KindJNI, KindReflect:
		return ClassConfig{kind: kind}, nil
	case KindProxy:
		return ProxyConfig{}, nil
	case KindResource:
		return ResourceConfig{}, nil
	default:
		_, err := ParseKind(string(kind))
		return nil, err
	}
}

// DecodeDocument decodes JSON data as a document of the given kind.
func DecodeDocument(kind Kind, data []byte) (Document, error) {
	switch kind {
	case KindJNI, KindReflect:
		cfg := ClassConfig{kind: kind}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case KindProxy:
		var cfg ProxyConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case KindResource:
		var cfg ResourceConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		_, err := ParseKind(string(kind))
		return nil, err
	}
}

// Merge folds docs left to right. All documents must share a kind.
func Merge(docs ...Document) (Document, error) {
	return mergeDocuments(docs, func(typed []Document) (Document, error) {
		return foldDocuments(context.Background(), typed, false)
	})
}

// MergeConcurrent folds docs as a reduction tree, merging each level
// concurrently. The result is identical to Merge.
func MergeConcurrent(ctx context.Context, docs ...Document) (Document, error) {
	return mergeDocuments(docs, func(typed []Document) (Document, error) {
		return foldDocuments(ctx, typed, true)
	})
}

func mergeDocuments(docs []Document, fold func([]Document) (Document, error)) (Document, error) {
	if len(docs) == 0 {
		return nil, &metaerrors.ConfigError{Option: "documents", Message: "at least one document is required"}
	}
	kind := docs[0].Kind()
	for i, d := range docs[1:] {
		if d.Kind() != kind {
			return nil, &metaerrors.KindMismatchError{
				Expected: string(kind),
				Actual:   string(d.Kind()),
				Source:   fmt.Sprintf("document %d", i+1),
			}
		}
	}
	return fold(docs)
}

func foldDocuments(ctx context.Context, docs []Document, tree bool) (Document, error) {
	switch docs[0].(type) {
	case ClassConfig:
		return foldAs[ClassConfig](ctx, docs, tree)
	case ProxyConfig:
		return foldAs[ProxyConfig](ctx, docs, tree)
	case ResourceConfig:
		return foldAs[ResourceConfig](ctx, docs, tree)
	default:
		return nil, fmt.Errorf("metadata: unsupported document type %T", docs[0])
	}
}

func foldAs[T interface {
	Document
	merge.Mergeable[T]
}](ctx context.Context, docs []Document, tree bool) (Document, error) {
	typed := make([]T, len(docs))
	for i, d := range docs {
		t, ok := d.(T)
		if !ok {
			return nil, fmt.Errorf("metadata: document %d has type %T, want %T", i, d, typed[0])
		}
		typed[i] = t
	}
	var (
		merged T
		err    error
	)
	if tree {
		merged, err = merge.FoldTree(ctx, typed)
	} else {
		merged, err = merge.Fold(typed...)
	}
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// Equal reports whether two documents are of the same kind and structurally
// equal.
func Equal(a, b Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case ClassConfig:
		y, ok := b.(ClassConfig)
		return ok && x.Equal(y)
	case ProxyConfig:
		y, ok := b.(ProxyConfig)
		return ok && x.Equal(y)
	case ResourceConfig:
		y, ok := b.(ResourceConfig)
		return ok && x.Equal(y)
	}
	return false
}

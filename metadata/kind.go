package metadata

import (
	"path/filepath"
	"strings"

	"github.com/erraggy/reachmeta/metaerrors"
)

// Kind identifies the category of reachability metadata a document describes.
type Kind string

const (
	// KindJNI is JNI access metadata (jni-config.json).
	KindJNI Kind = "jni"
	// KindReflect is reflective access metadata (reflect-config.json).
	KindReflect Kind = "reflect"
	// KindProxy is dynamic proxy metadata (proxy-config.json).
	KindProxy Kind = "proxy"
	// KindResource is resource and resource bundle metadata (resource-config.json).
	KindResource Kind = "resource"
)

// ValidKinds returns every supported kind in a stable order.
func ValidKinds() []Kind {
	return []Kind{KindJNI, KindReflect, KindProxy, KindResource}
}

// IsValidKind reports whether s names a supported kind.
func IsValidKind(s string) bool {
	for _, k := range ValidKinds() {
		if string(k) == s {
			return true
		}
	}
	return false
}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	if !IsValidKind(s) {
		return "", &metaerrors.ConfigError{
			Option:  "kind",
			Value:   s,
			Message: "must be one of jni, reflect, proxy, resource",
		}
	}
	return Kind(s), nil
}

// FileName returns the conventional file name for documents of this kind.
func (k Kind) FileName() string {
	return string(k) + "-config.json"
}

func (k Kind) String() string {
	return string(k)
}

// isClassKind reports whether documents of this kind are class lists.
func (k Kind) isClassKind() bool {
	return k == KindJNI || k == KindReflect
}

// KindFromFileName infers a kind from a conventional file name such as
// "reflect-config.json" or "/out/jni-config.yaml".
func KindFromFileName(path string) (Kind, bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name, ok := strings.CutSuffix(base, "-config")
	if !ok || !IsValidKind(name) {
		return "", false
	}
	return Kind(name), true
}

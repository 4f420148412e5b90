// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/parser"
)

// NewSimpleClassConfig creates a JNI document with one class and one
// constructor.
func NewSimpleClassConfig() metadata.ClassConfig {
	cfg, _ := metadata.NewClassConfig(
		metadata.NewClassUsage("com.example.App",
			metadata.WithMethods(metadata.NewMethodUsage("<init>"))),
	)
	return cfg
}

// NewDetailedReflectConfig creates a reflection document that uses methods,
// fields and blanket flags.
func NewDetailedReflectConfig() metadata.ClassConfig {
	cfg, _ := metadata.NewReflectConfig(
		metadata.NewClassUsage("com.example.Config",
			metadata.WithMethods(
				metadata.NewMethodUsage("<init>"),
				metadata.NewMethodUsage("setTimeout", "long"),
			),
			metadata.WithFieldNames("retries", "timeout"),
			metadata.WithAllDeclaredConstructors(),
		),
		metadata.NewClassUsage("java.lang.Runtime", metadata.WithAllPublicMethods()),
	)
	return cfg
}

// NewSimpleProxyConfig creates a proxy document with two interface lists.
func NewSimpleProxyConfig() metadata.ProxyConfig {
	return metadata.NewProxyConfig(
		metadata.NewProxyUsage("java.lang.Runnable", "java.io.Closeable"),
		metadata.NewProxyUsage("java.util.function.Supplier"),
	)
}

// NewSimpleResourceConfig creates a resource document with one include, one
// exclude and one bundle.
func NewSimpleResourceConfig() metadata.ResourceConfig {
	cfg, _ := metadata.NewResourceConfig(
		[]metadata.ResourcePattern{{Pattern: `\QMETA-INF/services/com.example.Plugin\E`}},
		[]metadata.ResourcePattern{{Pattern: `.*\.class$`}},
		[]metadata.ResourceBundle{{Name: "com.example.Messages", Locales: []string{"en"}}},
	)
	return cfg
}

// WriteTempDocument encodes doc and writes it to a temporary file named after
// its kind (e.g. jni-config.json, or jni-config.yaml for YAML).
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempDocument(t *testing.T, doc metadata.Document, format parser.SourceFormat) string {
	t.Helper()
	return WriteTempDocumentIn(t, t.TempDir(), doc, format)
}

// WriteTempDocumentIn is WriteTempDocument with a caller chosen directory,
// so several documents can share a directory tree.
func WriteTempDocumentIn(t *testing.T, dir string, doc metadata.Document, format parser.SourceFormat) string {
	t.Helper()

	data, err := parser.Marshal(doc, format)
	if err != nil {
		t.Fatalf("Failed to marshal %s document: %v", doc.Kind(), err)
	}

	name := doc.Kind().FileName()
	if format == parser.SourceFormatYAML {
		name = strings.TrimSuffix(name, ".json") + ".yaml"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// Package parser reads native-image reachability metadata documents.
//
// Sources are read through github.com/viant/afs, so a source may be a local
// path or any URL scheme afs supports. JSON and YAML are accepted; the format
// is taken from the file extension and otherwise from the content.
//
// The document kind is taken, in order, from an explicit [WithKind], from a
// conventional file name such as reflect-config.json, or from the content.
// JNI and reflection documents have the same layout, so content detection
// reports them as reflect and sets [ParseResult.KindInferred].
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("build/native/agent-output/jni-config.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Kind, result.Stats.Classes)
//
// # Options
//
//	WithFilePath           read from a path or URL
//	WithReader             read from an io.Reader
//	WithBytes              read from a byte slice
//	WithSourceName         name a reader or byte source in results and errors
//	WithKind               force the document kind
//	WithCanonicalTypeNames rewrite JVM descriptor type names
//	WithFileSystem         read through a custom afs.Service
//	WithContext            context for the read
//	WithLogger             structured debug logging
//
// [Marshal] writes a document back in canonical form.
package parser

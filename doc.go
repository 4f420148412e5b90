// Package reachmeta merges and compares GraalVM reachability metadata: the
// jni-config, reflect-config, proxy-config and resource-config documents the
// native-image tracing agent writes for each run of an application.
//
// # Overview
//
// Running the agent several times (tests, smoke runs, different code paths)
// produces several partial documents per kind. reachmeta combines them into
// one document per kind that grants the union of the access each run needed.
//
// The module consists of these packages:
//
//   - metadata: the value types (ClassUsage, MethodUsage, FieldUsage, the
//     eight blanket access flags) and one Document type per kind
//   - merge: the generic merge contract and keyed merge helpers
//   - parser: read JSON or YAML documents from paths, URLs, readers or bytes
//   - joiner: merge documents of one kind, or every document under a set of
//     directories
//   - differ: report access removed, narrowed or added between two documents
//   - metaerrors: typed errors shared by every package
//
// # Merge Rules
//
// Records are keyed: classes by name, methods by name and parameter types,
// fields by name, proxies by interface list, resource patterns by pattern and
// bundles by name. Merging two records with the same key unions their
// members and ORs their blanket flags. Merging is associative, commutative
// and idempotent, so the result does not depend on how many runs there were
// or in which order they are merged.
//
// # Quick Start
//
// Merge the JNI metadata of two agent runs:
//
//	import "github.com/erraggy/reachmeta/joiner"
//
//	result, err := joiner.JoinWithOptions(
//		joiner.WithFilePaths("run-1/jni-config.json", "run-2/jni-config.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := joiner.WriteResult(result, "jni-config.json"); err != nil {
//		log.Fatal(err)
//	}
//
// Merge every document under an agent output directory:
//
//	j := joiner.New(joiner.DefaultConfig())
//	dirs, err := j.JoinDirs([]string{"build/agent-output"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	written, err := joiner.WriteDirResult(dirs, "src/main/resources/META-INF/native-image")
//
// Build metadata in code:
//
//	import "github.com/erraggy/reachmeta/metadata"
//
//	a := metadata.NewClassUsage("com.example.App",
//		metadata.WithMethods(metadata.NewMethodUsage("run")),
//	)
//	b := metadata.NewClassUsage("com.example.App", metadata.WithAllPublicFields())
//	merged, err := a.MergeWith(b)
//
// Compare two documents:
//
//	import "github.com/erraggy/reachmeta/differ"
//
//	d := differ.New()
//	result, err := d.DiffFiles("old/reflect-config.json", "new/reflect-config.json")
//	if result.HasBreakingChanges {
//		fmt.Println("revision removes access")
//	}
//
// # Command-Line Interface
//
// The reachmeta command exposes the same operations:
//
//	reachmeta join -o jni-config.json run-1/jni-config.json run-2/jni-config.json
//	reachmeta merge-dir -o merged build/agent-output
//	reachmeta parse reflect-config.json
//	reachmeta diff old/reflect-config.json new/reflect-config.json
//	reachmeta mcp
//
// The mcp command serves the parse, join and diff operations as Model Context
// Protocol tools over stdio.
package reachmeta

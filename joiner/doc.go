// Package joiner merges reachability metadata documents produced by separate
// tracing agent runs into one document per kind.
//
// Every input must have the same kind (jni, reflect, proxy or resource). The
// result is normalized and does not depend on input order: merging the same
// documents in any order yields byte-identical output, which
// JoinResult.Digest makes easy to check. The format of the first input is
// used when writing output with WriteResult.
//
// # Quick Start
//
// Join files using functional options:
//
//	result, err := joiner.JoinWithOptions(
//		joiner.WithFilePaths("run-1/jni-config.json", "run-2/jni-config.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = joiner.WriteResult(result, "jni-config.json")
//
// Or create a reusable Joiner instance:
//
//	j := joiner.New(joiner.DefaultConfig())
//	result, _ := j.Join([]string{"run-1/reflect-config.json", "run-2/reflect-config.json"})
//	j.WriteResult(result, "reflect-config.json")
//
// # Options
//
//	WithFilePaths          paths or URLs to merge
//	WithParsed             already parsed documents to merge
//	WithConfig             apply a whole JoinerConfig
//	WithKind               force the kind of every input
//	WithParallelism        number of inputs read at once
//	WithCanonicalTypeNames rewrite JVM descriptor type names
//	WithStrictKinds        reject kinds guessed from content
//	WithContext            context for reading inputs
//	WithLogger             structured debug logging
//
// # Directories
//
// JoinDirs scans agent output directories for files named after a kind and
// merges each kind separately. WriteDirResult writes the merged set:
//
//	dr, err := j.JoinDirs([]string{"build/agent-output"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	paths, err := joiner.WriteDirResult(dr, "src/main/resources/META-INF/native-image")
//
// A .reachmetaignore file at the top of a scanned directory excludes paths
// using .gitignore syntax.
//
// # Warnings
//
// Non-fatal findings are returned as JoinWarnings: generic source names, a
// single input, duplicate entries inside one input, a kind guessed from
// content, and classes whose blanket access flags were widened by the merge.
package joiner

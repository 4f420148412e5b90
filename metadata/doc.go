// Package metadata defines native-image reachability metadata documents and
// their merge semantics.
//
// # Records
//
// [FieldUsage] and [MethodUsage] are leaf records with structural equality and
// a total order. [ClassUsage] aggregates the methods and fields used on one
// class together with eight blanket access flags such as allDeclaredMethods.
//
// # Documents
//
// A [Document] holds every record of one [Kind]. [ClassConfig] backs the jni
// and reflect kinds, [ProxyConfig] the proxy kind and [ResourceConfig] the
// resource kind. Documents are immutable; merging returns a new document.
//
// # Merge semantics
//
// Two usages of the same class merge by OR-ing each flag and unioning the
// method and field sets. A flag that any source sets therefore stays set.
// Documents merge by class name: classes found on one side pass through and
// classes found on both are merged. Merging is commutative, associative and
// idempotent, so any number of documents fold to the same canonical output in
// any order. Merging classes with different names fails with
// [metaerrors.ErrNameMismatch].
//
//	left, _ := metadata.NewClassConfig(
//		metadata.NewClassUsage("com.example.App",
//			metadata.WithMethods(metadata.NewMethodUsage("<init>"))),
//	)
//	right, _ := metadata.NewClassConfig(
//		metadata.NewClassUsage("com.example.App",
//			metadata.WithMethods(metadata.NewMethodUsage("run"))),
//	)
//	merged, err := left.MergeWith(right)
//
// # Encoding
//
// Documents encode to the JSON layout read by native-image. Class entries omit
// empty method and field lists and flags that are false. Decoding rejects
// entries without a name with a [metaerrors.ValidationError]. Reading files and
// YAML input is handled by the parser package.
package metadata

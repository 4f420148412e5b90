// Package differ compares two reachability metadata documents of the same
// kind and reports what access the target grants or withdraws.
//
// Removing a class, member, proxy, include pattern or bundle is a breaking
// change (SeverityError): code that worked with the source metadata may fail
// in the native image built from the target. Clearing a blanket access flag
// is a warning because an explicit member list may still cover what was used.
// Additions are informational.
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceFilePath("release/reflect-config.json"),
//		differ.WithTargetFilePath("build/reflect-config.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range result.Changes {
//		fmt.Println(c)
//	}
//
// Options:
//
//	WithSourceFilePath  source document path or URL
//	WithSourceParsed    already parsed source document
//	WithTargetFilePath  target document path or URL
//	WithTargetParsed    already parsed target document
//	WithIncludeInfo     keep informational changes (default true)
//	WithBreakingRules   override severities or ignore change types
//
// Change paths name the affected entry: "com.example.App" for a class,
// "com.example.App#run()" for a method, "com.example.App#timeout" for a field,
// "com.example.App@allDeclaredMethods" for a flag, "proxy[a.I,b.J]" for a
// proxy, "resources.includes[...]" and "bundles[...]" for resources.
package differ

package joiner_test

import (
	"fmt"
	"log"

	"github.com/erraggy/reachmeta/joiner"
	"github.com/erraggy/reachmeta/metadata"
)

func ExampleJoinWithOptions() {
	result, err := joiner.JoinWithOptions(
		joiner.WithFilePaths(
			"../testdata/agent-output/run-1/jni-config.json",
			"../testdata/agent-output/run-2/jni-config.json",
		),
	)
	if err != nil {
		log.Fatal(err)
	}
	cfg := result.Document.(metadata.ClassConfig)
	for c := range cfg.All() {
		fmt.Println(c.Name, c.Methods)
	}
	// Output:
	// com.example.App [<init>() run()]
	// java.lang.IllegalArgumentException [<init>(java.lang.String)]
	// java.util.ArrayList [<init>(int)]
}

func ExampleJoinResult_Digest() {
	j := joiner.New(joiner.DefaultConfig())
	a, _ := j.Join([]string{
		"../testdata/agent-output/run-1/proxy-config.json",
		"../testdata/agent-output/run-2/proxy-config.json",
	})
	b, _ := j.Join([]string{
		"../testdata/agent-output/run-2/proxy-config.json",
		"../testdata/agent-output/run-1/proxy-config.json",
	})
	da, _ := a.Digest()
	db, _ := b.Digest()
	fmt.Println(da == db)
	// Output: true
}

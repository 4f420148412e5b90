package joiner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reachmeta/internal/severity"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/metaerrors"
	"github.com/erraggy/reachmeta/parser"
)

const agentOutput = "../testdata/agent-output"

func run(n int, name string) string {
	return filepath.Join(agentOutput, fmt.Sprintf("run-%d", n), name)
}

func parseBytes(t *testing.T, data string, opts ...parser.Option) parser.ParseResult {
	t.Helper()
	res, err := parser.ParseWithOptions(append([]parser.Option{parser.WithBytes([]byte(data))}, opts...)...)
	require.NoError(t, err)
	return *res
}

func TestJoin_JNI(t *testing.T) {
	result, err := New(DefaultConfig()).Join([]string{run(1, "jni-config.json"), run(2, "jni-config.json")})
	require.NoError(t, err)

	assert.Equal(t, metadata.KindJNI, result.Kind)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, []string{run(1, "jni-config.json"), run(2, "jni-config.json")}, result.Sources)
	assert.Equal(t, 3, result.Stats.Classes)
	assert.Equal(t, 4, result.Stats.Methods)
	assert.Empty(t, result.StructuredWarnings)

	cfg := result.Document.(metadata.ClassConfig)
	assert.Equal(t, []string{"com.example.App", "java.lang.IllegalArgumentException", "java.util.ArrayList"}, cfg.Names())
	app, ok := cfg.Get("com.example.App")
	require.True(t, ok)
	assert.True(t, app.HasMethod("<init>"))
	assert.True(t, app.HasMethod("run"))
}

func TestJoin_OrderIndependentDigest(t *testing.T) {
	j := New(DefaultConfig())
	forward, err := j.Join([]string{run(1, "reflect-config.json"), run(2, "reflect-config.yaml")})
	require.NoError(t, err)
	backward, err := j.Join([]string{run(2, "reflect-config.yaml"), run(1, "reflect-config.json")})
	require.NoError(t, err)

	assert.True(t, metadata.Equal(forward.Document, backward.Document))

	d1, err := forward.Digest()
	require.NoError(t, err)
	d2, err := backward.Digest()
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 16)

	assert.Equal(t, parser.SourceFormatJSON, forward.SourceFormat)
	assert.Equal(t, parser.SourceFormatYAML, backward.SourceFormat)
}

func TestJoin_DigestDiffersForDifferentContent(t *testing.T) {
	j := New(DefaultConfig())
	a, err := j.Join([]string{run(1, "jni-config.json")})
	require.NoError(t, err)
	b, err := j.Join([]string{run(2, "jni-config.json")})
	require.NoError(t, err)

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, db)
}

func TestJoin_ReflectWarnings(t *testing.T) {
	result, err := New(DefaultConfig()).Join([]string{run(1, "reflect-config.json"), run(2, "reflect-config.yaml")})
	require.NoError(t, err)

	folded := result.StructuredWarnings.ByCategory(WarnDuplicatesFolded)
	require.Len(t, folded, 1)
	assert.Equal(t, run(1, "reflect-config.json"), folded[0].SourceFile)
	assert.Equal(t, 1, folded[0].Context["count"])

	widened := result.StructuredWarnings.ByCategory(WarnFlagWidened)
	require.Len(t, widened, 1)
	assert.Equal(t, "com.example.Config", widened[0].Path)
	assert.Equal(t, []string{run(1, "reflect-config.json"), run(2, "reflect-config.yaml")}, widened[0].Context["sources"])
	assert.Equal(t, "com.example.Config", widened[0].Location())

	cfg := result.Document.(metadata.ClassConfig)
	config, ok := cfg.Get("com.example.Config")
	require.True(t, ok)
	assert.True(t, config.Flags().Has(metadata.FlagAllDeclaredConstructors|metadata.FlagAllDeclaredMethods))
	assert.True(t, config.HasField("retries"))
	assert.True(t, config.HasField("timeout"))
	assert.True(t, config.HasMethod("setTimeout", "long"))

	assert.Len(t, result.Warnings, len(result.StructuredWarnings))
}

func TestJoin_KindMismatch(t *testing.T) {
	_, err := New(DefaultConfig()).Join([]string{run(1, "jni-config.json"), run(1, "proxy-config.json")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, metaerrors.ErrKindMismatch))

	var kindErr *metaerrors.KindMismatchError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, "jni", kindErr.Expected)
	assert.Equal(t, "proxy", kindErr.Actual)
	assert.Equal(t, run(1, "proxy-config.json"), kindErr.Source)
}

func TestJoin_ForcedKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kind = metadata.KindReflect
	result, err := New(cfg).Join([]string{run(1, "jni-config.json")})
	require.NoError(t, err)
	assert.Equal(t, metadata.KindReflect, result.Kind)
	assert.Equal(t, metadata.KindReflect, result.Document.Kind())
}

func TestJoin_ParseFailure(t *testing.T) {
	_, err := New(DefaultConfig()).Join([]string{run(1, "jni-config.json"), "../testdata/malformed.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "joiner: failed to parse ../testdata/malformed.json (2 of 2)")
	assert.True(t, errors.Is(err, metaerrors.ErrParse))
}

func TestJoin_NoPaths(t *testing.T) {
	_, err := New(DefaultConfig()).Join(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, metaerrors.ErrConfig))
}

func TestJoinParsed_SingleDocument(t *testing.T) {
	doc := parseBytes(t, `[{"name":"B"},{"name":"A"}]`,
		parser.WithKind(metadata.KindJNI), parser.WithSourceName("run-1"))
	result, err := New(DefaultConfig()).JoinParsed([]parser.ParseResult{doc})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, result.Document.(metadata.ClassConfig).Names())
	single := result.StructuredWarnings.ByCategory(WarnSingleDocument)
	require.Len(t, single, 1)
	assert.Equal(t, severity.SeverityInfo, single[0].Severity)
}

func TestJoinParsed_Empty(t *testing.T) {
	_, err := New(DefaultConfig()).JoinParsed(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, metaerrors.ErrConfig))
}

func TestJoinParsed_NilDocument(t *testing.T) {
	_, err := New(DefaultConfig()).JoinParsed([]parser.ParseResult{{SourcePath: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsedDocs[0].Document is nil")
}

func TestJoinParsed_GenericAndInferred(t *testing.T) {
	a := parseBytes(t, `[{"name":"A"}]`)
	b := parseBytes(t, `[{"name":"B"}]`)
	require.True(t, a.KindInferred)

	result, err := New(DefaultConfig()).JoinParsed([]parser.ParseResult{a, b})
	require.NoError(t, err)

	assert.Len(t, result.StructuredWarnings.ByCategory(WarnGenericSourceName), 2)
	inferred := result.StructuredWarnings.ByCategory(WarnKindInferred)
	require.Len(t, inferred, 2)
	assert.Equal(t, severity.SeverityWarning, inferred[0].Severity)
	assert.Contains(t, inferred[0].Message, "reflect-config.json")
}

func TestJoinParsed_StrictKinds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictKinds = true
	_, err := New(cfg).JoinParsed([]parser.ParseResult{parseBytes(t, `[{"name":"A"}]`)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, metaerrors.ErrConfig))

	explicit := parseBytes(t, `[{"name":"A"}]`, parser.WithKind(metadata.KindReflect))
	_, err = New(cfg).JoinParsed([]parser.ParseResult{explicit})
	assert.NoError(t, err)
}

func TestJoinParsed_ProxyAndResource(t *testing.T) {
	p1 := parseBytes(t, `[["a.I","b.J"]]`, parser.WithKind(metadata.KindProxy), parser.WithSourceName("p1"))
	p2 := parseBytes(t, `[{"interfaces":["a.I","b.J"]},{"interfaces":["c.K"]}]`, parser.WithKind(metadata.KindProxy), parser.WithSourceName("p2"))
	proxies, err := New(DefaultConfig()).JoinParsed([]parser.ParseResult{p1, p2})
	require.NoError(t, err)
	assert.Equal(t, 2, proxies.Document.Len())
	assert.Empty(t, proxies.StructuredWarnings.ByCategory(WarnFlagWidened))

	r1 := parseBytes(t, `{"resources":{"includes":[{"pattern":"a"}]},"bundles":[{"name":"m.Messages","locales":["de"]}]}`,
		parser.WithKind(metadata.KindResource), parser.WithSourceName("r1"))
	r2 := parseBytes(t, `{"resources":{"includes":[{"pattern":"a"}],"excludes":[{"pattern":"b"}]},"bundles":[{"name":"m.Messages","locales":["fr"]}]}`,
		parser.WithKind(metadata.KindResource), parser.WithSourceName("r2"))
	resources, err := New(DefaultConfig()).JoinParsed([]parser.ParseResult{r1, r2})
	require.NoError(t, err)

	rc := resources.Document.(metadata.ResourceConfig)
	assert.Len(t, rc.Includes(), 1)
	assert.Len(t, rc.Excludes(), 1)
	require.Len(t, rc.Bundles(), 1)
	assert.Equal(t, []string{"de", "fr"}, rc.Bundles()[0].Locales)
}

func TestToParseResult_Rejoin(t *testing.T) {
	j := New(DefaultConfig())
	first, err := j.Join([]string{run(1, "jni-config.json")})
	require.NoError(t, err)
	second, err := j.Join([]string{run(2, "jni-config.json")})
	require.NoError(t, err)

	all, err := j.Join([]string{run(1, "jni-config.json"), run(2, "jni-config.json")})
	require.NoError(t, err)

	rejoined, err := j.JoinParsed([]parser.ParseResult{*first.ToParseResult(), *second.ToParseResult()})
	require.NoError(t, err)
	assert.True(t, metadata.Equal(all.Document, rejoined.Document))
}

func TestWriteResult(t *testing.T) {
	result, err := New(DefaultConfig()).Join([]string{run(1, "jni-config.json"), run(2, "jni-config.json")})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "jni-config.json")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))
	require.NoError(t, WriteResult(result, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte("}\n]\n")))

	reparsed, err := parser.New().Parse(out)
	require.NoError(t, err)
	assert.True(t, metadata.Equal(result.Document, reparsed.Document))
}

func TestWriteResult_YAML(t *testing.T) {
	result, err := New(DefaultConfig()).Join([]string{run(2, "reflect-config.yaml"), run(1, "reflect-config.json")})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "reflect-config.yaml")
	require.NoError(t, New(DefaultConfig()).WriteResult(result, out))

	reparsed, err := parser.New().Parse(out)
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, reparsed.SourceFormat)
	assert.True(t, metadata.Equal(result.Document, reparsed.Document))
}

func TestWriteResult_Nil(t *testing.T) {
	assert.Error(t, WriteResult(nil, filepath.Join(t.TempDir(), "x.json")))
}

func TestJoinDirs(t *testing.T) {
	dr, err := New(DefaultConfig()).JoinDirs([]string{agentOutput})
	require.NoError(t, err)

	assert.Equal(t, metadata.ValidKinds(), dr.Kinds)
	jni := dr.Results[metadata.KindJNI].Document.(metadata.ClassConfig)
	assert.False(t, jni.Contains(metadata.NewClassUsage("com.example.Scratch")))
	assert.Equal(t, 3, jni.Len())
	assert.Equal(t, 2, dr.Results[metadata.KindProxy].Document.Len())
	assert.Len(t, dr.Sources(), 7)
	assert.NotEmpty(t, dr.Warnings().ByCategory(WarnFlagWidened))

	out := filepath.Join(t.TempDir(), "native-image")
	written, err := WriteDirResult(dr, out)
	require.NoError(t, err)
	require.Len(t, written, 4)
	assert.Equal(t, filepath.Join(out, "jni-config.json"), written[0])
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	reparsed, err := parser.New().Parse(written[1])
	require.NoError(t, err)
	assert.Equal(t, metadata.KindReflect, reparsed.Kind)
	assert.True(t, metadata.Equal(dr.Results[metadata.KindReflect].Document, reparsed.Document))
}

func TestJoinDirs_Empty(t *testing.T) {
	orig := joinerLogger
	joinerLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	defer func() { joinerLogger = orig }()

	_, err := New(DefaultConfig()).JoinDirs([]string{t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, metaerrors.ErrConfig))

	_, err = New(DefaultConfig()).JoinDirs(nil)
	assert.Error(t, err)
}

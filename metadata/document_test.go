package metadata

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reachmeta/metaerrors"
)

func TestNewDocument(t *testing.T) {
	for _, k := range ValidKinds() {
		t.Run(string(k), func(t *testing.T) {
			doc, err := NewDocument(k)
			require.NoError(t, err)
			assert.Equal(t, k, doc.Kind())
			assert.Equal(t, 0, doc.Len())
		})
	}

	_, err := NewDocument("bogus")
	assert.ErrorIs(t, err, metaerrors.ErrConfig)
}

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(KindReflect, []byte(`[{"name":"a.A","allPublicMethods":true}]`))
	require.NoError(t, err)
	assert.Equal(t, KindReflect, doc.Kind())
	cfg, ok := doc.(ClassConfig)
	require.True(t, ok)
	assert.True(t, cfg.Contains(NewClassUsage("a.A", WithAllPublicMethods())))

	doc, err = DecodeDocument(KindProxy, []byte(`[["a.A"]]`))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())

	doc, err = DecodeDocument(KindResource, []byte(`{"resources":{"includes":[{"pattern":"x"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())

	_, err = DecodeDocument(KindJNI, []byte(`[{}]`))
	assert.ErrorIs(t, err, metaerrors.ErrValidation)
}

func TestMerge(t *testing.T) {
	docs := []Document{
		mustClassConfig(t, NewClassUsage(app, WithMethods(NewMethodUsage("run")))),
		mustClassConfig(t, NewClassUsage(app, WithMethods(NewMethodUsage("start", "int")))),
		mustClassConfig(t, NewClassUsage("b.B")),
		mustClassConfig(t, NewClassUsage(app, WithAllDeclaredConstructors())),
		mustClassConfig(t, NewClassUsage(app, WithMethods(NewMethodUsage("<init>")))),
	}

	sequential, err := Merge(docs...)
	require.NoError(t, err)
	concurrent, err := MergeConcurrent(context.Background(), docs...)
	require.NoError(t, err)
	assert.True(t, Equal(sequential, concurrent))

	a, err := json.Marshal(sequential)
	require.NoError(t, err)
	b, err := json.Marshal(concurrent)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	cfg := sequential.(ClassConfig)
	assert.True(t, cfg.Contains(NewClassUsage(app,
		WithMethods(NewMethodUsage("<init>"), NewMethodUsage("run"), NewMethodUsage("start", "int")),
		WithAllDeclaredConstructors(),
	)))
}

func TestMerge_Errors(t *testing.T) {
	_, err := Merge()
	assert.ErrorIs(t, err, metaerrors.ErrConfig)

	_, err = Merge(mustClassConfig(t), NewProxyConfig())
	assert.ErrorIs(t, err, metaerrors.ErrKindMismatch)

	reflect, err := NewReflectConfig()
	require.NoError(t, err)
	_, err = MergeConcurrent(context.Background(), mustClassConfig(t), reflect)
	assert.ErrorIs(t, err, metaerrors.ErrKindMismatch)

	single, err := Merge(NewProxyConfig(NewProxyUsage("a.A")))
	require.NoError(t, err)
	assert.Equal(t, 1, single.Len())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(mustClassConfig(t), nil))
	assert.False(t, Equal(mustClassConfig(t), NewProxyConfig()))
	assert.True(t, Equal(NewProxyConfig(), ProxyConfig{}))
	assert.True(t, Equal(ResourceConfig{}, ResourceConfig{}))
}

func TestStatsOf(t *testing.T) {
	cfg := mustClassConfig(t,
		NewClassUsage("a.A", WithMethods(NewMethodUsage("m"), NewMethodUsage("n", "int")), WithFieldNames("f"),
			WithAllDeclaredMethods(), WithAllPublicFields()),
		NewClassUsage("b.B", WithFieldNames("g")),
	)
	assert.Equal(t, Stats{Entries: 2, Classes: 2, Methods: 2, Fields: 2, BlanketFlags: 2}, StatsOf(cfg))

	proxies := NewProxyConfig(NewProxyUsage("a.A", "b.B"))
	assert.Equal(t, Stats{Entries: 1, Proxies: 1, ProxyInterfaces: 2}, StatsOf(proxies))

	res, err := NewResourceConfig([]ResourcePattern{{Pattern: "a"}}, []ResourcePattern{{Pattern: "b"}}, []ResourceBundle{{Name: "m"}})
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 3, ResourceIncludes: 1, ResourceExcludes: 1, Bundles: 1}, StatsOf(res))

	assert.Equal(t, Stats{}, StatsOf(nil))
}

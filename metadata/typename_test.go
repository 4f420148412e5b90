package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// default-package classes, not primitive descriptors
		{"I", "I"},
		{"C", "C"},
		{"Z", "Z"},
		{"[Z", "boolean[]"},
		{"[Q", "[Q"},
		{"[I", "int[]"},
		{"[[J", "long[][]"},
		{"[Ljava.lang.String;", "java.lang.String[]"},
		{"Ljava/lang/Object;", "java.lang.Object"},
		{"[Ljava/util/List;", "java.util.List[]"},
		{"java.lang.String", "java.lang.String"},
		{"int", "int"},
		{" java.lang.String ", "java.lang.String"},
		{"", ""},
		// composed and decomposed "é" become the same bytes
		{"com.example.Cafe\u0301", "com.example.Caf\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalTypeName(tt.in))
		})
	}
}

func TestCanonicalizeTypeNames(t *testing.T) {
	cfg := mustClassConfig(t,
		NewClassUsage(app, WithMethods(
			NewMethodUsage("<init>", "[Ljava.lang.String;"),
			NewMethodUsage("<init>", "java.lang.String[]"),
			NewMethodUsage("start", "[I"),
		)),
		NewClassUsage("[Lcom.example.App;"),
	)

	doc, err := CanonicalizeTypeNames(cfg)
	require.NoError(t, err)
	got := doc.(ClassConfig)
	assert.Equal(t, []string{app, app + "[]"}, got.Names())
	assert.True(t, got.Contains(NewClassUsage(app, WithMethods(
		NewMethodUsage("<init>", "java.lang.String[]"),
		NewMethodUsage("start", "int[]"),
	))))

	distinct, err := CanonicalizeTypeNames(mustClassConfig(t, NewClassUsage("C"), NewClassUsage("char")))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "char"}, distinct.(ClassConfig).Names())

	proxies, err := CanonicalizeTypeNames(NewProxyConfig(NewProxyUsage("Ljava/lang/Runnable;")))
	require.NoError(t, err)
	assert.True(t, proxies.(ProxyConfig).Contains(NewProxyUsage("java.lang.Runnable")))

	res := ResourceConfig{}
	same, err := CanonicalizeTypeNames(res)
	require.NoError(t, err)
	assert.True(t, Equal(res, same))
}

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/reachmeta/metaerrors"
)

func TestKindFromFileName(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		ok   bool
	}{
		{"jni-config.json", KindJNI, true},
		{"/out/run-1/reflect-config.json", KindReflect, true},
		{"proxy-config.yaml", KindProxy, true},
		{"resource-config.yml", KindResource, true},
		{"serialization-config.json", "", false},
		{"jni.json", "", false},
		{"config.json", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := KindFromFileName(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range ValidKinds() {
		got, err := ParseKind(string(k))
		assert.NoError(t, err)
		assert.Equal(t, k, got)
		assert.Equal(t, string(k)+"-config.json", k.FileName())
	}

	_, err := ParseKind("serialization")
	assert.ErrorIs(t, err, metaerrors.ErrConfig)
	assert.False(t, IsValidKind(""))
}

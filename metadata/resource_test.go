package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reachmeta/metaerrors"
)

func TestResourceConfig_UnmarshalJSON(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		data := `{
			"resources": {
				"includes": [{"pattern": "\\QMETA-INF/services/x\\E"}, {"pattern": "app.properties"}],
				"excludes": [{"pattern": ".*\\.class$"}]
			},
			"bundles": [{"name": "messages", "locales": ["fr", "en"]}, {"name": "messages", "locales": ["de"]}]
		}`
		var cfg ResourceConfig
		require.NoError(t, json.Unmarshal([]byte(data), &cfg))
		assert.Len(t, cfg.Includes(), 2)
		assert.Equal(t, "app.properties", cfg.Includes()[1].Pattern)
		assert.Len(t, cfg.Excludes(), 1)
		assert.Equal(t, []ResourceBundle{{Name: "messages", Locales: []string{"de", "en", "fr"}}}, cfg.Bundles())
		assert.Equal(t, 4, cfg.Len())
	})

	t.Run("legacy array form", func(t *testing.T) {
		var cfg ResourceConfig
		require.NoError(t, json.Unmarshal([]byte(`{"resources":[{"pattern":"b"},{"pattern":"a"}]}`), &cfg))
		assert.Equal(t, []ResourcePattern{{Pattern: "a"}, {Pattern: "b"}}, cfg.Includes())
	})

	t.Run("empty object", func(t *testing.T) {
		var cfg ResourceConfig
		require.NoError(t, json.Unmarshal([]byte(`{}`), &cfg))
		assert.Equal(t, 0, cfg.Len())
	})

	t.Run("missing pattern", func(t *testing.T) {
		var cfg ResourceConfig
		err := json.Unmarshal([]byte(`{"resources":{"includes":[{}]}}`), &cfg)
		assert.ErrorIs(t, err, metaerrors.ErrValidation)
	})

	t.Run("missing bundle name", func(t *testing.T) {
		var cfg ResourceConfig
		err := json.Unmarshal([]byte(`{"bundles":[{"locales":["en"]}]}`), &cfg)
		assert.ErrorIs(t, err, metaerrors.ErrValidation)
	})
}

func TestResourceConfig_MarshalJSON(t *testing.T) {
	cfg, err := NewResourceConfig(
		[]ResourcePattern{{Pattern: "b"}, {Pattern: "a"}},
		nil,
		[]ResourceBundle{{Name: "messages"}},
	)
	require.NoError(t, err)
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resources":{"includes":[{"pattern":"a"},{"pattern":"b"}]},"bundles":[{"name":"messages"}]}`, string(data))
}

func TestResourceConfig_MergeWith(t *testing.T) {
	left, err := NewResourceConfig([]ResourcePattern{{Pattern: "a"}}, nil, []ResourceBundle{{Name: "m", Locales: []string{"en"}}})
	require.NoError(t, err)
	right, err := NewResourceConfig([]ResourcePattern{{Pattern: "a"}, {Pattern: "b"}}, []ResourcePattern{{Pattern: "x"}},
		[]ResourceBundle{{Name: "m", Locales: []string{"fr"}}, {Name: "n"}})
	require.NoError(t, err)

	ab, err := left.MergeWith(right)
	require.NoError(t, err)
	ba, err := right.MergeWith(left)
	require.NoError(t, err)
	assert.True(t, ab.Equal(ba))

	assert.Equal(t, []ResourcePattern{{Pattern: "a"}, {Pattern: "b"}}, ab.Includes())
	assert.Equal(t, []ResourcePattern{{Pattern: "x"}}, ab.Excludes())
	assert.Equal(t, []ResourceBundle{{Name: "m", Locales: []string{"en", "fr"}}, {Name: "n"}}, ab.Bundles())

	self, err := ab.MergeWith(ab)
	require.NoError(t, err)
	assert.True(t, self.Equal(ab))
}

func TestResourceBundle_MergeWith_NameMismatch(t *testing.T) {
	_, err := ResourceBundle{Name: "a"}.MergeWith(ResourceBundle{Name: "b"})
	assert.ErrorIs(t, err, metaerrors.ErrNameMismatch)
}

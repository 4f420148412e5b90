package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/reachmeta/metaerrors"
)

func TestSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{"one set", []Source{{"WithFilePath", true}, {"WithBytes", false}}, ""},
		{"none set", []Source{{"WithFilePath", false}, {"WithReader", false}, {"WithBytes", false}},
			"configuration error for input: must specify an input source (use WithFilePath, WithReader or WithBytes)"},
		{"two set", []Source{{"WithFilePath", true}, {"WithBytes", true}},
			"configuration error for input: must specify exactly one input source, got WithFilePath and WithBytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SingleInputSource(tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.ErrorIs(t, err, metaerrors.ErrConfig)
		})
	}
}

func TestNonNegative(t *testing.T) {
	assert.NoError(t, NonNegative("parallelism", 0))
	assert.ErrorIs(t, NonNegative("parallelism", -1), metaerrors.ErrConfig)
}

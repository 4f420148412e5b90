package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("msg", "k", "v")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.With("source", "jni-config.json").Warn("duplicate entry", "class", "a.A")
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "source=jni-config.json")
	assert.Contains(t, out, "class=a.A")

	assert.NotNil(t, NewSlogAdapter(nil).logger)
}

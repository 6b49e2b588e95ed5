package slogpretty

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("component", "test"))

	log.Info("hello", slog.Int("answer", 42))

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, `"answer": 42`)
	assert.Contains(t, out, `"component": "test"`)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelWarn}}
	h := opts.NewPrettyHandler(&buf)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/jdot274/parcel/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
)

func newHandlerLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return slog.New(logger.NewPrettyHandler(buf, nil)), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "message\n"},
		{name: "warn", level: slog.LevelWarn, want: "! message\n"},
		{name: "error", level: slog.LevelError, want: "✗ message\n"},
		{name: "debug is filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newHandlerLogger(t)
			lg.Log(t.Context(), tt.level, "message")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	lg, buf := newHandlerLogger(t)

	lg.With("stage", "AssetGraph").Info("loaded", "bytes", 512)
	assert.Equal(t, "loaded stage=AssetGraph bytes=512\n", buf.String())
}

func TestPrettyHandler_Groups(t *testing.T) {
	lg, buf := newHandlerLogger(t)

	lg.WithGroup("cache").WithGroup("blob").Info("read", "key", "abc")
	assert.Equal(t, "read cache.blob.key=abc\n", buf.String())
}

func TestPrettyHandler_CustomLevel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	lg.Info("hidden")
	lg.Warn("shown")
	assert.Equal(t, "! shown\n", buf.String())
}

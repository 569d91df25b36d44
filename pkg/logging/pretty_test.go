package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		level slog.Level
		attr  slog.Attr
		want  []string
	}{
		{"debug", slog.LevelDebug, slog.String("key", "value"), []string{"DEBUG:", "key", "value"}},
		{"info", slog.LevelInfo, slog.Int("count", 42), []string{"INFO:", "count", "42"}},
		{"warn", slog.LevelWarn, slog.Bool("flag", true), []string{"WARN:", "flag", "true"}},
		{"error", slog.LevelError, slog.String("error", "boom"), []string{"ERROR:", "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewPrettyHandler(&buf, PrettyHandlerOptions{SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug}})

			record := slog.NewRecord(time.Now(), tt.level, tt.name+" message", 0)
			record.AddAttrs(tt.attr)

			require.NoError(t, h.Handle(ctx, record))
			out := buf.String()
			assert.Contains(t, out, tt.name+" message")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, out)
		})
	}
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, PrettyHandlerOptions{})

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "plain", 0)))
	assert.Contains(t, buf.String(), "{}")
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{})).With("input", "alumni.xlsx")

	logger.Info("rows read", "rows", 12)
	out := buf.String()
	assert.Contains(t, out, "alumni.xlsx")
	assert.Contains(t, out, "12")
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{})).
		With("run", "r1").
		WithGroup("input").
		With("file", "alumni.xlsx")

	logger.Info("rows read", "rows", 12, slog.Group("skipped", "blank", 2))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "rows read")
	assert.NotContains(t, out, `"msg"`)
	assert.Contains(t, out, `{"input":{"file":"alumni.xlsx","rows":12,"skipped":{"blank":2}},"run":"r1"}`)
}

func TestPrettyHandler_EmptyGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{})).WithGroup("")

	logger.Info("plain", slog.Group("none"))
	assert.Contains(t, buf.String(), "plain")
	assert.Contains(t, buf.String(), "{}")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelWarn)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

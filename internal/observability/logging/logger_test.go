package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"news-digest/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected slog.Level
	}{
		{name: "default is info", logLevel: "", expected: slog.LevelInfo},
		{name: "debug", logLevel: "debug", expected: slog.LevelDebug},
		{name: "warn", logLevel: "warn", expected: slog.LevelWarn},
		{name: "error", logLevel: "error", expected: slog.LevelError},
		{name: "unknown falls back to info", logLevel: "trace", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.logLevel != "" {
				t.Setenv("LOG_LEVEL", tt.logLevel)
			}
			assert.Equal(t, tt.expected, levelFromEnv())
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, logger).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestWithRequestID_NoID(t *testing.T) {
	logger := slog.Default()
	got := WithRequestID(context.Background(), logger)
	assert.Same(t, logger, got, "logger should pass through when no request ID is set")
}

func TestFromContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name   string
		logger *slog.Logger
		want   *slog.Logger
	}{
		{name: "with custom logger", logger: custom, want: custom},
		{name: "with nil logger should use default", logger: nil, want: DefaultLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := New(context.Background(), tt.logger)
			assert.Same(t, tt.want, Logger(ctx))
		})
	}
}

func TestLogger_NoLoggerInContext(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))
}

func TestNewForTUI(t *testing.T) {
	original := LevelVar.Level()
	defer LevelVar.Set(original)

	LevelVar.Set(slog.LevelDebug)

	buf := &bytes.Buffer{}
	ctx := NewForTUI(context.Background(), buf)

	Info(ctx, "buffered message", "target", "scene.max")
	Debug(ctx, "debug message")

	out := buf.String()
	assert.Contains(t, out, "buffered message")
	assert.Contains(t, out, `"scene.max"`)
	assert.Contains(t, out, "debug message")
	assert.NotContains(t, out, "\033[", "TUI logger must not write colour codes")
}

func TestLoggingFunctions_RespectLevel(t *testing.T) {
	original := LevelVar.Level()
	defer LevelVar.Set(original)

	LevelVar.Set(slog.LevelWarn)

	buf := &bytes.Buffer{}
	ctx := NewForTUI(context.Background(), buf)

	Info(ctx, "hidden")
	Debug(ctx, "hidden too")
	Warn(ctx, "shown warning")
	Error(ctx, "shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.Contains(t, out, "shown error")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOk bool
	}{
		{in: "DEBUG", want: slog.LevelDebug, wantOk: true},
		{in: "info", want: slog.LevelInfo, wantOk: true},
		{in: " Warn ", want: slog.LevelWarn, wantOk: true},
		{in: "warning", want: slog.LevelWarn, wantOk: true},
		{in: "ERROR", want: slog.LevelError, wantOk: true},
		{in: "INVALID", want: slog.LevelWarn, wantOk: false},
		{in: "", want: slog.LevelWarn, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "DEBUG")
	assert.Equal(t, slog.LevelDebug, logLevelFromEnv())

	t.Setenv(LogLevelEnvVar, "")
	assert.Equal(t, slog.LevelWarn, logLevelFromEnv())
}

func TestJSONLogger(t *testing.T) {
	require.NotNil(t, JSONLogger)

	original := LevelVar.Level()
	defer LevelVar.Set(original)

	LevelVar.Set(slog.LevelDebug)
	assert.True(t, JSONLogger.Enabled(context.Background(), slog.LevelInfo))
}

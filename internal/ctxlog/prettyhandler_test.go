// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)

	return r
}

func TestPrettyHandler_Handle(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf))

	err := h.Handle(context.Background(), newTestRecord(slog.LevelInfo, "loading target", slog.String("target", "a.max")))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[03:04:05] INFO: loading target "), out)
	assert.Contains(t, out, `"target"`)
	assert.Contains(t, out, `"a.max"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(nil, WithDestinationWriter(buf))

	require.NoError(t, h.Handle(context.Background(), newTestRecord(slog.LevelWarn, "plain")))
	assert.Equal(t, "[03:04:05] WARN: plain\n", buf.String())

	buf.Reset()

	h = NewPrettyHandler(nil, WithDestinationWriter(buf), WithOutputEmptyAttrs())
	require.NoError(t, h.Handle(context.Background(), newTestRecord(slog.LevelWarn, "plain")))
	assert.Equal(t, "[03:04:05] WARN: plain {}\n", buf.String())
}

func TestPrettyHandler_ReplaceAttrRemovesTime(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(buf))

	require.NoError(t, h.Handle(context.Background(), newTestRecord(slog.LevelError, "boom")))
	assert.Equal(t, "ERROR: boom\n", buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf)))

	logger.With("run", "r1").WithGroup("step").Info("done", "script", "s.ms")

	out := buf.String()
	for _, want := range []string{`"run"`, `"r1"`, `"step"`, `"script"`, `"s.ms"`} {
		assert.Contains(t, out, want)
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestSuppressDefaults(t *testing.T) {
	f := suppressDefaults(nil)

	for _, key := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey} {
		assert.Equal(t, slog.Attr{}, f(nil, slog.String(key, "x")), key)
	}

	kept := slog.String("other", "x")
	assert.Equal(t, kept, f(nil, kept))

	upper := suppressDefaults(func(_ []string, a slog.Attr) slog.Attr {
		return slog.String(a.Key, strings.ToUpper(a.Value.String()))
	})
	assert.Equal(t, "X", upper(nil, kept).Value.String())
}

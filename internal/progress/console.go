// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-FFFFFF/maxbatch/internal/color"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
)

const durationRounding = 100 * time.Millisecond

// SeverityColour returns the console colour for a severity.
func SeverityColour(s Severity) color.Code {
	switch s {
	case SeverityLoading:
		return color.FgBlue
	case SeverityRunning:
		return color.FgGreen
	case SeveritySaving:
		return color.FgMagenta
	case SeverityWarning:
		return color.FgYellow
	case SeverityError:
		return color.FgRed
	default:
		return color.FgWhite
	}
}

// ConsoleSink writes log events as "[HH:MM:SS] message" lines and,
// optionally, a status line after every progress update.
type ConsoleSink struct {
	w            io.Writer
	showProgress bool
	mu           sync.Mutex
}

var _ Sink = (*ConsoleSink)(nil)

// NewConsoleSink creates a ConsoleSink writing to w.
func NewConsoleSink(w io.Writer, showProgress bool) *ConsoleSink {
	return &ConsoleSink{w: w, showProgress: showProgress}
}

// Log implements Sink.
func (c *ConsoleSink) Log(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := event.Timestamp.Format(ctxlog.TimeFormat) + " " + event.Message
	fmt.Fprintln(c.w, color.Colorize(line, SeverityColour(event.Severity))) //nolint:errcheck
}

// Progress implements Sink. Zeroed updates, sent when a run ends, are not printed.
func (c *ConsoleSink) Progress(info Info) {
	if !c.showProgress || info.CurrentStep == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "Progress: %d/%d %s\n", info.CurrentStep, info.TotalSteps, info) //nolint:errcheck
}

// Finish implements Sink.
func (c *ConsoleSink) Finish(summary Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	codes := []color.Code{color.Bold, color.FgGreen}

	switch summary.State {
	case StateCompletedWithErrors, StateEmptyInput:
		codes = []color.Code{color.Bold, color.FgRed}
	case StateAborted:
		codes = []color.Code{color.Bold, color.FgYellow}
	}

	msg := fmt.Sprintf("Run %s: %d/%d steps, %d error(s), %s",
		summary.State, summary.CurrentStep, summary.TotalSteps, summary.Errors, summary.Duration.Round(durationRounding))
	fmt.Fprintln(c.w, color.Colorize(msg, codes...)) //nolint:errcheck
}

// LogSink forwards events to a structured logger, for headless and JSON output.
type LogSink struct {
	logger *slog.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink creates a LogSink using the logger carried by ctx.
func NewLogSink(ctx context.Context) *LogSink {
	return &LogSink{logger: ctxlog.Logger(ctx)}
}

// SeverityLevel maps a severity to a slog level.
func SeverityLevel(s Severity) slog.Level {
	switch s {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log implements Sink.
func (l *LogSink) Log(event Event) {
	args := []any{"severity", event.Severity.String()}

	if event.Target != "" {
		args = append(args, "target", event.Target)
	}

	if event.Script != "" {
		args = append(args, "script", event.Script)
	}

	if event.Err != nil {
		args = append(args, "error", event.Err.Error())
	}

	l.logger.Log(context.Background(), SeverityLevel(event.Severity), event.Message, args...)
}

// Progress implements Sink.
func (l *LogSink) Progress(info Info) {
	l.logger.Debug("progress",
		"step", info.CurrentStep,
		"total", info.TotalSteps,
		"percent", info.Percent,
		"elapsed", info.Elapsed.String(),
		"remaining", info.Remaining.String(),
	)
}

// Finish implements Sink.
func (l *LogSink) Finish(summary Summary) {
	level := slog.LevelInfo
	if summary.State != StateCompleted {
		level = slog.LevelWarn
	}

	args := []any{
		"run", summary.RunID,
		"state", summary.State.String(),
		"step", summary.CurrentStep,
		"total", summary.TotalSteps,
		"errors", summary.Errors,
		"duration", summary.Duration.String(),
	}

	if summary.Err != nil {
		args = append(args, "error", summary.Err.Error())
	}

	l.logger.Log(context.Background(), level, "run finished", args...)
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
)

// Sender is the part of tea.Program used by ProgramSink.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards run reports to a bubbletea program.
type ProgramSink struct {
	sender Sender
	closed bool
	mu     sync.RWMutex
}

var _ progress.Sink = (*ProgramSink)(nil)

// NewProgramSink creates a sink sending to s.
func NewProgramSink(s Sender) *ProgramSink {
	return &ProgramSink{sender: s}
}

// Log implements progress.Sink.
func (ps *ProgramSink) Log(event progress.Event) {
	ps.send(EventMsg{Event: event})
}

// Progress implements progress.Sink.
func (ps *ProgramSink) Progress(info progress.Info) {
	ps.send(ProgressMsg{Info: info})
}

// Finish implements progress.Sink.
func (ps *ProgramSink) Finish(summary progress.Summary) {
	ps.send(FinishedMsg{Summary: summary})
}

// Close stops forwarding.
func (ps *ProgramSink) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.closed = true
}

func (ps *ProgramSink) send(msg tea.Msg) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.closed || ps.sender == nil {
		return
	}

	ps.sender.Send(msg)
}

// RunFunc starts a batch run reporting to sink.
type RunFunc func(ctx context.Context, sink progress.Sink) *batch.Result

// Runner shows a batch run in the terminal.
type Runner struct {
	title       string
	modelOpts   []ModelOption
	programOpts []tea.ProgramOption
	mu          sync.Mutex
}

// NewRunner creates a Runner. Program options are passed to bubbletea and
// default to the alternate screen.
func NewRunner(title string, modelOpts []ModelOption, programOpts ...tea.ProgramOption) *Runner {
	if len(programOpts) == 0 {
		programOpts = []tea.ProgramOption{tea.WithAltScreen()}
	}

	return &Runner{title: title, modelOpts: modelOpts, programOpts: programOpts}
}

// Run starts run in the background and the TUI in the foreground.
// abort is called when the user asks to stop. The TUI stays open after the
// run finishes until the user quits, unless the model auto-quits.
func (r *Runner) Run(ctx context.Context, abort func(), run RunFunc) (*batch.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(r.title, abort, cancel, r.modelOpts...)
	program := tea.NewProgram(model, r.programOpts...)
	sink := NewProgramSink(program)

	resultCh := make(chan *batch.Result, 1)

	go func() {
		defer close(resultCh)
		resultCh <- run(ctx, sink)
	}()

	tuiDone := make(chan error, 1)

	go func() {
		_, err := program.Run()
		tuiDone <- err
	}()

	var (
		res    *batch.Result
		tuiErr error
	)

	select {
	case res = <-resultCh:
		// Finish has been sent; wait for the user to leave.
		tuiErr = <-tuiDone

		sink.Close()

	case tuiErr = <-tuiDone:
		// The TUI went away first: stop the run and wait for it.
		sink.Close()
		cancel()

		res = <-resultCh

	case <-ctx.Done():
		sink.Close()
		program.Quit()

		res = <-resultCh
		tuiErr = <-tuiDone
	}

	return res, tuiErr
}

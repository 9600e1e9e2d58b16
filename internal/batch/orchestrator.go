// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/host"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
)

// Orchestrator runs every script against every target, one pair at a time.
// It is safe to call Abort from any goroutine; StartRun rejects concurrent runs.
type Orchestrator struct {
	host    host.Host
	sink    progress.Sink
	exister host.Exister
	token   *Token
	now     func() time.Time
	running atomic.Bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSink sets the sink that receives events, progress and the summary.
func WithSink(s progress.Sink) Option {
	return func(o *Orchestrator) {
		o.sink = s
	}
}

// WithExister sets the existence checker used for scripts and targets.
func WithExister(e host.Exister) Option {
	return func(o *Orchestrator) {
		o.exister = e
	}
}

// WithToken shares an abort token, e.g. with a signal handler.
func WithToken(t *Token) Option {
	return func(o *Orchestrator) {
		o.token = t
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates an Orchestrator driving h.
func NewOrchestrator(h host.Host, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		host:  h,
		sink:  progress.NewNullSink(),
		token: NewToken(),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.exister == nil {
		o.exister = host.NewExister()
	}

	return o
}

// Token returns the abort token of the orchestrator.
func (o *Orchestrator) Token() *Token {
	return o.token
}

// Abort requests the current run to stop at its next checkpoint.
func (o *Orchestrator) Abort() {
	o.token.Request()
}

// Running reports whether a run is in progress.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// StartRun snapshots the inputs of p and processes them.
// Step failures are recorded in the result and never stop the run.
// Cancelling ctx has the same effect as Abort.
func (o *Orchestrator) StartRun(ctx context.Context, p InputProvider) *Result {
	if !o.running.CompareAndSwap(false, true) {
		return &Result{State: progress.StateRunning, Err: ErrRunInProgress}
	}
	defer o.running.Store(false)

	r := &run{
		o:   o,
		ctx: ctx,
		req: RequestFrom(p),
		res: &Result{
			ID:        uuid.NewString(),
			State:     progress.StateRunning,
			StartTime: o.now(),
		},
	}

	ctxlog.Debug(ctx, "run starting", "run", r.res.ID)

	return r.execute()
}

// run holds the state of a single StartRun call.
type run struct {
	o   *Orchestrator
	ctx context.Context
	req RunRequest
	res *Result
}

func (r *run) execute() *Result {
	if len(r.req.Scripts) == 0 || len(r.req.Targets) == 0 {
		r.o.log(progress.SeverityWarning, "Script or target lists are empty!", "", "", ErrEmptyInput)
		return r.reject(ErrEmptyInput)
	}

	r.req.Scripts = r.existing(r.req.Scripts, "Script")
	r.req.Targets = r.existing(r.req.Targets, "Target")

	if len(r.req.Scripts) == 0 || len(r.req.Targets) == 0 {
		r.o.log(progress.SeverityWarning, "No existing script or target files to process.", "", "", ErrNoValidFiles)
		return r.reject(ErrNoValidFiles)
	}

	r.res.TotalSteps = r.req.TotalSteps()
	r.o.log(progress.SeverityInfo,
		fmt.Sprintf("Starting processing of %d target files with %d script files.", len(r.req.Targets), len(r.req.Scripts)),
		"", "", nil)

	for _, target := range r.req.Targets {
		if r.aborted() {
			return r.finishAborted()
		}

		if !r.processTarget(target) {
			continue
		}

		if r.aborted() {
			// Either the script loop broke on an abort, or the abort arrived
			// after the last step. In both cases the target is not saved.
			return r.finishAborted()
		}

		if r.req.Save && !r.save(target) {
			return r.finishAborted()
		}
	}

	return r.finish()
}

// processTarget loads the target and runs every script against it.
// It returns false when the target was skipped.
func (r *run) processTarget(target TargetRef) bool {
	if !r.o.exister.Exists(target) {
		r.fail(OutcomeTargetMissing, target, "", fmt.Sprintf("Target file not found: %s", target), ErrTargetMissing)
		return false
	}

	r.o.log(progress.SeverityLoading, "Loading target file: "+target, target, "", nil)

	if err := r.invoke(func(ctx context.Context) error { return r.o.host.Load(ctx, target) }); err != nil {
		if r.cancelled(err) {
			r.o.log(progress.SeverityWarning, "Execution aborted while loading: "+target, target, "", err)
			return true
		}

		r.fail(OutcomeTargetLoadError, target, "",
			fmt.Sprintf("Error loading '%s': %v", target, err), errors.Join(ErrHostLoad, err))

		return false
	}

	for _, script := range r.req.Scripts {
		if r.aborted() {
			break
		}

		if !r.o.exister.Exists(script) {
			r.fail(OutcomeScriptMissing, target, script, fmt.Sprintf("Script file not found: %s", script), ErrScriptMissing)
			continue
		}

		r.o.log(progress.SeverityRunning, "Running script file: "+script, target, script, nil)

		err := r.invoke(func(ctx context.Context) error { return r.o.host.Run(ctx, script, target) })

		switch {
		case errors.Is(err, host.ErrAbortObserved):
			r.o.log(progress.SeverityWarning, "Execution aborted during script: "+script, target, script, err)
			r.o.token.Request()

			return true
		case r.cancelled(err):
			r.o.log(progress.SeverityWarning, "Execution aborted during script: "+script, target, script, err)
			return true
		case err != nil:
			r.fail(OutcomeScriptError, target, script,
				fmt.Sprintf("Error executing '%s': %v", script, err), errors.Join(ErrHostRun, err))

			continue
		}

		r.res.Outcomes = append(r.res.Outcomes, StepOutcome{Kind: OutcomeSuccess, Target: target, Script: script})
		r.res.CurrentStep++
		r.o.sink.Progress(ComputeProgress(r.res.CurrentStep, r.res.TotalSteps, r.res.StartTime, r.o.now()))
	}

	return true
}

// save writes the target back. It returns false when the save was cut short
// by cancellation.
func (r *run) save(target TargetRef) bool {
	r.o.log(progress.SeveritySaving, "Saving target file: "+target, target, "", nil)

	err := r.invoke(func(ctx context.Context) error { return r.o.host.Save(ctx, target) })

	switch {
	case r.cancelled(err):
		r.o.log(progress.SeverityWarning, "Execution aborted while saving: "+target, target, "", err)
		return false
	case err != nil:
		r.fail(OutcomeSaveError, target, "",
			fmt.Sprintf("Error saving '%s': %v", target, err), errors.Join(ErrHostSave, err))
	}

	return true
}

// cancelled reports whether err is the run context's own cancellation
// surfacing through a host call. Such errors end the run as aborted rather
// than being recorded as failures.
func (r *run) cancelled(err error) bool {
	ctxErr := r.ctx.Err()
	return err != nil && ctxErr != nil && errors.Is(err, ctxErr)
}

// invoke calls a host operation, converting a panic into an error.
func (r *run) invoke(fn func(ctx context.Context) error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = NewErrHostPanic(v)
		}
	}()

	return fn(r.ctx)
}

// existing drops the paths that do not exist, logging each one.
func (r *run) existing(paths []string, kind string) []string {
	kept := make([]string, 0, len(paths))

	for _, p := range paths {
		if r.o.exister.Exists(p) {
			kept = append(kept, p)
			continue
		}

		r.o.log(progress.SeverityWarning, fmt.Sprintf("%s file not found, skipped: %s", kind, p), "", "", nil)
	}

	return kept
}

func (r *run) aborted() bool {
	return r.o.token.Requested() || r.ctx.Err() != nil
}

func (r *run) fail(kind OutcomeKind, target TargetRef, script ScriptRef, msg string, err error) {
	r.res.ErrorsOccurred = true
	r.res.Outcomes = append(r.res.Outcomes, StepOutcome{Kind: kind, Target: target, Script: script, Message: msg})
	r.o.log(progress.SeverityError, msg, target, script, err)
}

// reject ends a run that never started. No progress update is sent.
func (r *run) reject(err error) *Result {
	r.res.State = progress.StateEmptyInput
	r.res.Err = err

	return r.end()
}

func (r *run) finishAborted() *Result {
	r.res.State = progress.StateAborted
	r.o.log(progress.SeverityWarning, fmt.Sprintf("Processing aborted at %.1f%%.", r.res.Percent()), "", "", nil)
	r.o.sink.Progress(progress.Info{})

	return r.end()
}

func (r *run) finish() *Result {
	if r.res.ErrorsOccurred {
		r.res.State = progress.StateCompletedWithErrors
		r.o.log(progress.SeverityWarning, "Processing completed with errors. Check the log for details.", "", "", nil)
	} else {
		r.res.State = progress.StateCompleted
		r.o.log(progress.SeverityInfo, "Processing finished successfully.", "", "", nil)
	}

	r.o.sink.Progress(progress.Info{})

	return r.end()
}

// end resets the token and reports the summary.
func (r *run) end() *Result {
	r.o.token.Reset()
	r.res.EndTime = r.o.now()
	r.o.sink.Finish(r.res.Summary())

	ctxlog.Debug(r.ctx, "run finished", "run", r.res.ID, "state", r.res.State.String())

	return r.res
}

func (o *Orchestrator) log(sev progress.Severity, msg string, target TargetRef, script ScriptRef, err error) {
	o.sink.Log(progress.Event{
		Timestamp: o.now(),
		Severity:  sev,
		Message:   msg,
		Target:    target,
		Script:    script,
		Err:       err,
	})
}

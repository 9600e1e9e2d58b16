// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/matt-FFFFFF/maxbatch/internal/color"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
)

var (
	// ErrWriteGob is returned when writing a result to its binary format fails.
	ErrWriteGob = errors.New("failed to write binary result")
	// ErrReadGob is returned when reading a binary result fails.
	ErrReadGob = errors.New("failed to read binary result")
)

// Result is the record of one StartRun call.
type Result struct {
	ID             string         // Run identifier
	State          progress.State // Terminal state
	TotalSteps     int            // Number of (target, script) pairs after filtering
	CurrentStep    int            // Pairs that ran successfully
	ErrorsOccurred bool           // Whether any step failed
	Outcomes       []StepOutcome  // Every recorded outcome, in order
	StartTime      time.Time      // When the run started
	EndTime        time.Time      // When the run finished
	Err            error          // Why the run was rejected, if it was
}

// Percent returns the completion percentage.
func (r *Result) Percent() float64 {
	if r.TotalSteps == 0 {
		return 0
	}

	return float64(r.CurrentStep) / float64(r.TotalSteps) * percentMax
}

// Failures returns the number of failed outcomes.
func (r *Result) Failures() int {
	n := 0

	for _, o := range r.Outcomes {
		if o.Kind.Failed() {
			n++
		}
	}

	return n
}

// Summary converts the result into the sink summary.
func (r *Result) Summary() progress.Summary {
	return progress.Summary{
		RunID:       r.ID,
		State:       r.State,
		CurrentStep: r.CurrentStep,
		TotalSteps:  r.TotalSteps,
		Percent:     r.Percent(),
		Errors:      r.Failures(),
		Duration:    r.EndTime.Sub(r.StartTime),
		Err:         r.Err,
	}
}

// WriteText writes a tree of outcomes grouped by target, followed by a status line.
func (r *Result) WriteText(w io.Writer, showSuccess bool) error {
	var (
		lastTarget string
		started    bool
	)

	for _, o := range r.Outcomes {
		if !showSuccess && !o.Kind.Failed() {
			continue
		}

		if !started || o.Target != lastTarget {
			if _, err := fmt.Fprintf(w, "%s\n", color.Colorize(o.Target, color.Bold)); err != nil {
				return err
			}

			lastTarget, started = o.Target, true
		}

		if err := writeOutcome(w, o); err != nil {
			return err
		}
	}

	status := fmt.Sprintf("%s: %d/%d steps (%.1f%%), %d error(s)",
		r.State, r.CurrentStep, r.TotalSteps, r.Percent(), r.Failures())
	if r.Err != nil {
		status += ": " + r.Err.Error()
	}

	_, err := fmt.Fprintln(w, color.Colorize(status, color.Bold, stateColour(r.State)))

	return err
}

func writeOutcome(w io.Writer, o StepOutcome) error {
	var mark, label string

	switch o.Kind {
	case OutcomeSuccess:
		mark = color.Colorize("✓", color.FgGreen)
	case OutcomeScriptMissing, OutcomeTargetMissing:
		mark = color.Colorize("~", color.FgYellow)
	default:
		mark = color.Colorize("✗", color.FgRed)
	}

	label = o.Script
	if label == "" {
		label = "[" + o.Kind.String() + "]"
	}

	if _, err := fmt.Fprintf(w, "  %s %s\n", mark, label); err != nil {
		return err
	}

	if o.Message == "" {
		return nil
	}

	_, err := fmt.Fprintf(w, "    %s %s\n", color.Colorize("➜", color.FgRed), o.Message)

	return err
}

func stateColour(s progress.State) color.Code {
	switch s {
	case progress.StateCompleted:
		return color.FgGreen
	case progress.StateAborted:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// gobResult is the wire form of Result. Errors do not survive gob, so the
// rejection reason travels as text.
type gobResult struct {
	ID             string
	State          progress.State
	TotalSteps     int
	CurrentStep    int
	ErrorsOccurred bool
	Outcomes       []StepOutcome
	StartTime      time.Time
	EndTime        time.Time
	Err            string
}

// WriteBinary encodes the result with gob.
func (r *Result) WriteBinary(w io.Writer) error {
	g := gobResult{
		ID:             r.ID,
		State:          r.State,
		TotalSteps:     r.TotalSteps,
		CurrentStep:    r.CurrentStep,
		ErrorsOccurred: r.ErrorsOccurred,
		Outcomes:       r.Outcomes,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
	}

	if r.Err != nil {
		g.Err = r.Err.Error()
	}

	if err := gob.NewEncoder(w).Encode(g); err != nil {
		return errors.Join(ErrWriteGob, err)
	}

	return nil
}

// ReadBinary decodes a result written by WriteBinary.
func ReadBinary(rd io.Reader) (*Result, error) {
	var g gobResult
	if err := gob.NewDecoder(rd).Decode(&g); err != nil {
		return nil, errors.Join(ErrReadGob, err)
	}

	r := &Result{
		ID:             g.ID,
		State:          g.State,
		TotalSteps:     g.TotalSteps,
		CurrentStep:    g.CurrentStep,
		ErrorsOccurred: g.ErrorsOccurred,
		Outcomes:       g.Outcomes,
		StartTime:      g.StartTime,
		EndTime:        g.EndTime,
	}

	if g.Err != "" {
		r.Err = errors.New(g.Err)
	}

	return r, nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"time"
)

// Severity tags a log event.
type Severity int

const (
	// SeverityInfo is general information about the run.
	SeverityInfo Severity = iota
	// SeverityLoading is emitted before a target is loaded.
	SeverityLoading
	// SeverityRunning is emitted before a script is run against a target.
	SeverityRunning
	// SeveritySaving is emitted before a target is saved.
	SeveritySaving
	// SeverityWarning marks a recoverable problem or an abort.
	SeverityWarning
	// SeverityError marks a recorded step failure.
	SeverityError
)

// String implements the Stringer interface for Severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLoading:
		return "LOADING"
	case SeverityRunning:
		return "RUNNING"
	case SeveritySaving:
		return "SAVING"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is a timestamped log line emitted during a run.
type Event struct {
	Timestamp time.Time // When the event occurred
	Severity  Severity  // Event severity
	Message   string    // Human-readable message
	Target    string    // Target the event relates to, if any
	Script    string    // Script the event relates to, if any
	Err       error     // Error that caused the event, if any
}

// Info is a snapshot of run progress.
type Info struct {
	CurrentStep int           // Completed (target, script) pairs
	TotalSteps  int           // Total pairs in the run
	Percent     float64       // Completion percentage, clamped to [0, 100]
	Elapsed     time.Duration // Time since the run started
	Remaining   time.Duration // Estimated time to completion
}

// HMS splits the estimated remaining time into whole hours, minutes and seconds.
func (i Info) HMS() (int, int, int) {
	secs := int(i.Remaining / time.Second)
	if secs < 0 {
		secs = 0
	}

	return secs / 3600, (secs % 3600) / 60, secs % 60
}

// String renders the progress the way the status line shows it.
func (i Info) String() string {
	h, m, s := i.HMS()
	return fmt.Sprintf("%.1f%%, ~ %02d:%02d:%02d remaining", i.Percent, h, m, s)
}

// State is the lifecycle state of a run.
type State int

const (
	// StateIdle means no run has started.
	StateIdle State = iota
	// StateRunning means a run is in progress.
	StateRunning
	// StateCompleted means every step was attempted and none failed.
	StateCompleted
	// StateCompletedWithErrors means every step was attempted and at least one failed.
	StateCompletedWithErrors
	// StateAborted means the run stopped early at an abort checkpoint.
	StateAborted
	// StateEmptyInput means the run was rejected before any step because of missing input.
	StateEmptyInput
)

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCompletedWithErrors:
		return "completed with errors"
	case StateAborted:
		return "aborted"
	case StateEmptyInput:
		return "empty input"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s >= StateCompleted && s <= StateEmptyInput
}

// Summary is sent once when a run reaches a terminal state.
type Summary struct {
	RunID       string        // Identifier of the run
	State       State         // Terminal state
	CurrentStep int           // Steps completed when the run ended
	TotalSteps  int           // Total steps of the run
	Percent     float64       // Completion percentage when the run ended
	Errors      int           // Number of recorded failures
	Duration    time.Duration // Wall time of the run
	Err         error         // Validation error for StateEmptyInput
}

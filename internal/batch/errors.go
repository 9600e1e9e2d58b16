// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the script or target list is empty.
	ErrEmptyInput = errors.New("script or target list is empty")
	// ErrNoValidFiles is returned when no script or no target exists on disk.
	ErrNoValidFiles = errors.New("no valid files to process")
	// ErrRunInProgress is returned when a run is started while another is active.
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrTargetMissing is recorded when a target does not exist.
	ErrTargetMissing = errors.New("target not found")
	// ErrScriptMissing is recorded when a script does not exist.
	ErrScriptMissing = errors.New("script not found")
	// ErrHostLoad wraps a failed host load.
	ErrHostLoad = errors.New("host failed to load target")
	// ErrHostRun wraps a failed host script run.
	ErrHostRun = errors.New("host failed to run script")
	// ErrHostSave wraps a failed host save.
	ErrHostSave = errors.New("host failed to save target")
)

// ErrHostPanic is returned when a host operation panics.
// It is constructed with the value that caused the panic.
type ErrHostPanic struct {
	v any
}

// Error implements the error interface for ErrHostPanic.
func (e *ErrHostPanic) Error() string {
	switch x := e.v.(type) {
	case error:
		return "host operation panic: " + x.Error()
	default:
		return fmt.Sprintf("host operation panic: %v", x)
	}
}

// Unwrap returns the panic value if it was an error.
func (e *ErrHostPanic) Unwrap() error {
	err, _ := e.v.(error)
	return err
}

// NewErrHostPanic creates a new ErrHostPanic with the given value.
func NewErrHostPanic(v any) error {
	return &ErrHostPanic{v: v}
}

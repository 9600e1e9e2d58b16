// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package host

import (
	"context"
	"errors"
)

// ErrAbortObserved is returned by Run when the host noticed an abort request
// while the script was executing. The orchestrator treats it as an abort
// request rather than a script failure.
var ErrAbortObserved = errors.New("host observed an abort request")

// Host is the set of synchronous operations the orchestrator needs.
// Each call may block for as long as the host takes; it is not preempted.
type Host interface {
	// Load opens the target document in the host.
	Load(ctx context.Context, target string) error
	// Run executes the script against the currently loaded target.
	Run(ctx context.Context, script, target string) error
	// Save persists the currently loaded target.
	Save(ctx context.Context, target string) error
}

// Funcs is a Host built from functions. A nil function succeeds.
type Funcs struct {
	LoadFunc func(ctx context.Context, target string) error
	RunFunc  func(ctx context.Context, script, target string) error
	SaveFunc func(ctx context.Context, target string) error
}

var _ Host = (*Funcs)(nil)

// Load implements Host.
func (f *Funcs) Load(ctx context.Context, target string) error {
	if f.LoadFunc == nil {
		return nil
	}

	return f.LoadFunc(ctx, target)
}

// Run implements Host.
func (f *Funcs) Run(ctx context.Context, script, target string) error {
	if f.RunFunc == nil {
		return nil
	}

	return f.RunFunc(ctx, script, target)
}

// Save implements Host.
func (f *Funcs) Save(ctx context.Context, target string) error {
	if f.SaveFunc == nil {
		return nil
	}

	return f.SaveFunc(ctx, target)
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import "slices"

// ScriptRef identifies a script file.
type ScriptRef = string

// TargetRef identifies a target document.
type TargetRef = string

// InputProvider supplies the inputs of a run.
// The config loader, CLI flags and the interactive shell all implement it.
type InputProvider interface {
	OrderedScripts() []ScriptRef
	OrderedTargets() []TargetRef
	SaveAfterEach() bool
}

// RunRequest is the snapshot of inputs a run consumes.
type RunRequest struct {
	Scripts []ScriptRef
	Targets []TargetRef
	Save    bool
}

var _ InputProvider = RunRequest{}

// OrderedScripts implements InputProvider.
func (r RunRequest) OrderedScripts() []ScriptRef { return r.Scripts }

// OrderedTargets implements InputProvider.
func (r RunRequest) OrderedTargets() []TargetRef { return r.Targets }

// SaveAfterEach implements InputProvider.
func (r RunRequest) SaveAfterEach() bool { return r.Save }

// TotalSteps is the number of (target, script) pairs in the request.
func (r RunRequest) TotalSteps() int {
	return len(r.Targets) * len(r.Scripts)
}

// RequestFrom copies the provider's inputs so later edits do not affect a run.
func RequestFrom(p InputProvider) RunRequest {
	return RunRequest{
		Scripts: slices.Clone(p.OrderedScripts()),
		Targets: slices.Clone(p.OrderedTargets()),
		Save:    p.SaveAfterEach(),
	}
}

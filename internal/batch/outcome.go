// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

// OutcomeKind tags a StepOutcome.
type OutcomeKind int

const (
	// OutcomeSuccess means the script ran against the target.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeScriptError means the host reported a script failure.
	OutcomeScriptError
	// OutcomeTargetLoadError means the target could not be loaded.
	OutcomeTargetLoadError
	// OutcomeTargetMissing means the target no longer exists.
	OutcomeTargetMissing
	// OutcomeScriptMissing means the script no longer exists.
	OutcomeScriptMissing
	// OutcomeSaveError means the target could not be saved.
	OutcomeSaveError
)

// String implements the Stringer interface for OutcomeKind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeScriptError:
		return "script error"
	case OutcomeTargetLoadError:
		return "target load error"
	case OutcomeTargetMissing:
		return "target missing"
	case OutcomeScriptMissing:
		return "script missing"
	case OutcomeSaveError:
		return "save error"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome is a recorded error.
func (k OutcomeKind) Failed() bool {
	return k != OutcomeSuccess
}

// StepOutcome is the result of one attempted operation of a run.
// Script is empty for target-level outcomes (load, save, missing target).
type StepOutcome struct {
	Kind    OutcomeKind
	Target  TargetRef
	Script  ScriptRef
	Message string
}

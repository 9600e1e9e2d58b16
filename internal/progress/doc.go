// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the event sink contract used by the batch orchestrator.
// The orchestrator calls a Sink synchronously at well-defined points of a run:
// log events as they happen, a progress update after every completed step,
// and exactly one terminal summary when the run finishes.
//
// Presentation layers (console, TUI, structured logs) implement Sink and
// never reach back into the orchestrator other than through its abort token.
package progress

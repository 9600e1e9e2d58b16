// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import "sync/atomic"

// Token is a cooperative abort request.
// Any goroutine may call Request; the orchestrator polls Requested at its
// checkpoints and calls Reset when a run finishes.
type Token struct {
	requested atomic.Bool
}

// NewToken returns a cleared token.
func NewToken() *Token {
	return &Token{}
}

// Request asks the current run to stop at its next checkpoint.
func (t *Token) Request() {
	t.requested.Store(true)
}

// Requested reports whether an abort has been requested.
func (t *Token) Requested() bool {
	return t.requested.Load()
}

// Reset clears the request.
func (t *Token) Reset() {
	t.requested.Store(false)
}

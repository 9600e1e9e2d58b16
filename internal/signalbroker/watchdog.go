// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
)

// Aborter receives a cooperative abort request.
type Aborter interface {
	Request()
	Requested() bool
}

// Watch handles signals from sigCh until ctx is done or sigCh is closed.
// A signal calls aborter.Request. A signal arriving while a request is still
// pending calls cancel and returns. Once the aborter is reset, the next signal
// is a first signal again.
func Watch(ctx context.Context, sigCh <-chan os.Signal, aborter Aborter, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if aborter.Requested() {
				ctxlog.Warn(ctx, "received second signal, cancelling", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Warn(ctx, "received signal, stopping after the current operation", "signal", sig.String())
			aborter.Request()
		}
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"bytes"
	"context"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type countingAborter struct {
	n         atomic.Int32
	requested atomic.Bool
}

func (c *countingAborter) Request() {
	c.n.Add(1)
	c.requested.Store(true)
}

func (c *countingAborter) Requested() bool {
	return c.requested.Load()
}

func (c *countingAborter) Reset() {
	c.requested.Store(false)
}

func testContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	return ctxlog.NewForTUI(ctx, &bytes.Buffer{}), cancel
}

func TestWatch_FirstSignalRequestsAbort(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := testContext(t)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	a := &countingAborter{}
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, a, cancel)
	}()

	sigCh <- os.Interrupt

	assert.Eventually(t, func() bool { return a.n.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.NoError(t, ctx.Err())

	close(sigCh)
	<-done
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := testContext(t)
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	a := &countingAborter{}
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, a, cancel)
	}()

	sigCh <- os.Interrupt
	sigCh <- syscall.SIGTERM

	<-done

	assert.Equal(t, int32(1), a.n.Load())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWatch_SignalAfterResetRequestsAgain(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := testContext(t)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	a := &countingAborter{}
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, a, cancel)
	}()

	sigCh <- os.Interrupt

	assert.Eventually(t, a.Requested, time.Second, 10*time.Millisecond)

	// The run that observed the request has finished.
	a.Reset()

	sigCh <- os.Interrupt

	assert.Eventually(t, func() bool { return a.n.Load() == 2 }, time.Second, 10*time.Millisecond)
	assert.True(t, a.Requested())
	assert.NoError(t, ctx.Err())

	close(sigCh)
	<-done
}

func TestWatch_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := testContext(t)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, make(chan os.Signal), &countingAborter{}, cancel)
	}()

	cancel()
	<-done
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the maxbatch command-line application.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/maxbatch/cmd"
	"github.com/matt-FFFFFF/maxbatch/cmd/cmdstate"
	"github.com/matt-FFFFFF/maxbatch/cmd/run"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cmdstate.Token, cancel)

	if code := exitCode(ctx, cmd.RootCmd.Run(ctx, os.Args)); code != 0 {
		os.Exit(code)
	}
}

// exitCode maps the result of the root command to a process exit code.
// An exit code carried by err wins over the state of ctx.
func exitCode(ctx context.Context, err error) int {
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		return run.ExitAborted
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		return run.ExitFailed
	}

	ctxlog.Debug(ctx, "command completed successfully")

	return 0
}

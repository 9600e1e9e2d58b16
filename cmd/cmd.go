// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/maxbatch"
	"github.com/matt-FFFFFF/maxbatch/cmd/config"
	"github.com/matt-FFFFFF/maxbatch/cmd/run"
	"github.com/matt-FFFFFF/maxbatch/cmd/shell"
	"github.com/matt-FFFFFF/maxbatch/cmd/show"
	"github.com/matt-FFFFFF/maxbatch/internal/color"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	logLevelFlag = "log-level"
	noColorFlag  = "no-color"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		config.ConfigCmd,
		run.RunCmd,
		shell.ShellCmd,
		show.ShowCmd,
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    logLevelFlag,
			Usage:   "Log level: DEBUG, INFO, WARN or ERROR",
			Sources: cli.EnvVars(ctxlog.LogLevelEnvVar),
		},
		&cli.BoolFlag{
			Name:  noColorFlag,
			Usage: "Disable coloured output",
		},
	},
	Before:    before,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "maxbatch",
	Version:   fmt.Sprintf("%s (%s)", maxbatch.Version, maxbatch.Commit),
	Description: `maxbatch runs a list of scripts against a list of target files in a host
application. Each target is loaded, every script is run against it in order and the
target is optionally saved. A failing step is recorded and the batch moves on.`,
	Usage:     "maxbatch run -f definition.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if s := cmd.String(logLevelFlag); s != "" {
		level, ok := ctxlog.ParseLevel(s)
		if !ok {
			return ctx, cli.Exit(fmt.Sprintf("invalid log level %q", s), 1)
		}

		ctxlog.LevelVar.Set(level)
	}

	if cmd.Bool(noColorFlag) {
		color.SetEnabled(false)
	}

	return ctx, nil
}

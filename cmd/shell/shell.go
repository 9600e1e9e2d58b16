// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell implements the shell command.
package shell

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/maxbatch/cmd/cmdstate"
	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/matt-FFFFFF/maxbatch/internal/config"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/listfile"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
	"github.com/matt-FFFFFF/maxbatch/internal/shell"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const fileFlag = "file"

// ErrNotTerminal is returned when stdin is not a terminal.
var ErrNotTerminal = errors.New("the shell needs an interactive terminal")

// ShellCmd starts an interactive session for building and running a batch.
var ShellCmd = &cli.Command{
	Name:  "shell",
	Usage: "Build and run batches interactively",
	Description: `Start an interactive shell to add scripts and targets, import list files
and run them. The host commands come from a definition given with --file; its
scripts, targets and save setting are loaded into the session.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "URL of a YAML or HCL run definition. Supports Hashicorp's go-getter syntax.",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec
		return cli.Exit(ErrNotTerminal.Error(), 1)
	}

	parser := listfile.NewParser()

	var (
		run shell.RunFunc
		def *config.Definition
	)

	if url := cmd.String(fileFlag); url != "" {
		var err error

		if def, err = config.Load(ctx, url); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if h := def.OSHost(); h != nil {
			h.Output = cmd.ErrWriter
			sink := progress.NewConsoleSink(cmd.Writer, true)

			run = func(ctx context.Context, p batch.InputProvider) *batch.Result {
				// A signal taken while the prompt was idle does not abort the next run.
				cmdstate.Token.Reset()

				o := batch.NewOrchestrator(h, batch.WithSink(sink), batch.WithToken(cmdstate.Token))
				return o.StartRun(ctx, p)
			}
		}
	}

	if run == nil {
		ctxlog.Warn(ctx, "no host commands configured, 'run' is unavailable")
	}

	s := shell.NewSession(parser, run)

	if def != nil {
		applyDefinition(ctx, s, def)
	}

	if err := shell.Run(ctx, s, cmd.Writer); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// applyDefinition loads the inputs of a definition into the session.
func applyDefinition(ctx context.Context, s *shell.Session, def *config.Definition) {
	s.AddScripts(def.Scripts...)
	s.AddTargets(def.Targets...)
	s.SetSave(def.SaveAfterEach)

	if len(def.ListFiles) > 0 {
		if _, err := s.Import(ctx, def.ListFiles...); err != nil {
			ctxlog.Warn(ctx, "could not read list files", "error", err)
		}
	}
}

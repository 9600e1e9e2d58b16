// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run command.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/maxbatch/cmd/cmdstate"
	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/matt-FFFFFF/maxbatch/internal/config"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/host"
	"github.com/matt-FFFFFF/maxbatch/internal/listfile"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
	"github.com/matt-FFFFFF/maxbatch/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag                 = "file"
	scriptFlag               = "script"
	targetFlag               = "target"
	listFlag                 = "list"
	saveFlag                 = "save"
	loadCmdFlag              = "load-cmd"
	runCmdFlag               = "run-cmd"
	saveCmdFlag              = "save-cmd"
	abortCodeFlag            = "abort-exit-code"
	outFlag                  = "out"
	outputSuccessDetailsFlag = "output-success-details"
	tuiFlag                  = "tui"
	autoQuitFlag             = "auto-quit"
	jsonFlag                 = "json"
	quietFlag                = "quiet"
	cliExitStr               = ""
	defaultTitle             = "maxbatch"
)

// Process exit codes.
const (
	ExitFailed  = 1
	ExitAborted = 2
)

var (
	// ErrNoHost is returned when neither the definition nor the flags name a run command.
	ErrNoHost = errors.New("no host run command configured: use a definition with a host block or --run-cmd")
	// ErrBuildRequest is returned when the scripts and targets cannot be collected.
	ErrBuildRequest = errors.New("failed to build run request")
)

// RunCmd processes every script against every target.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "Run every script against every target",
	Description: `Run opens each target in the host application, runs every script against it
in order and optionally saves it. Scripts and targets come from a definition file,
from list files and from the command line, in that order.

Definition URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.

Host commands given on the command line are split on spaces, with double quotes
grouping an argument. They may reference {{.Script}} and {{.Target}}, and replace
the matching command of the definition.

Press Ctrl+C once to stop after the current step, twice to stop immediately.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "URL of a YAML or HCL run definition. Supports Hashicorp's go-getter syntax.",
			OnlyOnce: true,
		},
		&cli.StringSliceFlag{
			Name:      scriptFlag,
			Aliases:   []string{"s"},
			Usage:     "Script file to run. Specify multiple times to run several scripts in order.",
			TakesFile: true,
		},
		&cli.StringSliceFlag{
			Name:      targetFlag,
			Aliases:   []string{"t"},
			Usage:     "Target file to process. Specify multiple times for several targets.",
			TakesFile: true,
		},
		&cli.StringSliceFlag{
			Name:      listFlag,
			Aliases:   []string{"l"},
			Usage:     "List file naming scripts and targets, one or more per line.",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:        saveFlag,
			Usage:       "Save each target after all scripts ran against it",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     loadCmdFlag,
			Usage:    "Host command that loads a target",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     runCmdFlag,
			Usage:    "Host command that runs a script against the loaded target",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     saveCmdFlag,
			Usage:    "Host command that saves a target",
			OnlyOnce: true,
		},
		&cli.IntSliceFlag{
			Name:  abortCodeFlag,
			Usage: "Exit code of a host command given on the command line that means the host saw an abort request",
		},
		&cli.StringFlag{
			Name:      outFlag,
			Aliases:   []string{"o"},
			Usage:     "Write the result to this file, for use with the show command",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        outputSuccessDetailsFlag,
			Aliases:     []string{"success"},
			Usage:       "Include successful steps in the output",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"interactive"},
			Usage:       "Run with interactive Terminal User Interface (TUI) showing real-time progress",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        autoQuitFlag,
			Usage:       "Close the TUI as soon as the run ends",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        jsonFlag,
			Usage:       "Write run events as JSON lines to stdout instead of console lines",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        quietFlag,
			Aliases:     []string{"q"},
			Usage:       "Do not print a progress line after each step",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

// options are the flag values that decide what to run.
type options struct {
	definitionURL string
	scripts       []string
	targets       []string
	listFiles     []string
	save          bool
	loadCmd       string
	runCmd        string
	saveCmd       string
	abortCodes    []int
}

// plan is everything a run needs.
type plan struct {
	title   string
	request batch.RunRequest
	host    *host.OSHost
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		definitionURL: cmd.String(fileFlag),
		scripts:       cmd.StringSlice(scriptFlag),
		targets:       cmd.StringSlice(targetFlag),
		listFiles:     cmd.StringSlice(listFlag),
		save:          cmd.Bool(saveFlag),
		loadCmd:       cmd.String(loadCmdFlag),
		runCmd:        cmd.String(runCmdFlag),
		saveCmd:       cmd.String(saveCmdFlag),
		abortCodes:    cmd.IntSlice(abortCodeFlag),
	}
}

func buildPlan(ctx context.Context, opts options, parser *listfile.Parser) (*plan, error) {
	p := &plan{title: defaultTitle, host: &host.OSHost{}}

	if opts.definitionURL != "" {
		def, err := config.Load(ctx, opts.definitionURL)
		if err != nil {
			return nil, err
		}

		if def.Name != "" {
			p.title = def.Name
		}

		if p.request, err = def.Request(ctx, parser); err != nil {
			return nil, errors.Join(ErrBuildRequest, err)
		}

		if h := def.OSHost(); h != nil {
			p.host = h
		}
	}

	p.request.Scripts, _ = listfile.AppendUnique(p.request.Scripts, opts.scripts...)
	p.request.Targets, _ = listfile.AppendUnique(p.request.Targets, opts.targets...)
	p.request.Save = p.request.Save || opts.save

	if len(opts.listFiles) > 0 {
		l, err := parser.ReadFiles(ctx, opts.listFiles...)
		if err != nil {
			return nil, errors.Join(ErrBuildRequest, err)
		}

		p.request.Scripts, _ = listfile.AppendUnique(p.request.Scripts, l.Scripts...)
		p.request.Targets, _ = listfile.AppendUnique(p.request.Targets, l.Targets...)
	}

	if c := commandFromFlag(opts.loadCmd, opts.abortCodes); c != nil {
		p.host.LoadCmd = c
	}

	if c := commandFromFlag(opts.runCmd, opts.abortCodes); c != nil {
		p.host.RunCmd = c
	}

	if c := commandFromFlag(opts.saveCmd, opts.abortCodes); c != nil {
		p.host.SaveCmd = c
	}

	if p.host.RunCmd == nil {
		return nil, ErrNoHost
	}

	return p, nil
}

// commandFromFlag parses a command line such as `hostcli --open "{{.Target}}"`.
func commandFromFlag(s string, abortCodes []int) *host.Command {
	fields := listfile.Fields(s)
	if len(fields) == 0 {
		return nil
	}

	return &host.Command{
		Path:           fields[0],
		Args:           fields[1:],
		AbortExitCodes: abortCodes,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	p, err := buildPlan(ctx, optionsFrom(cmd), listfile.NewParser())
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, ExitFailed)
	}

	p.host.Output = cmd.ErrWriter
	token := cmdstate.Token

	var res *batch.Result

	switch {
	case cmd.Bool(tuiFlag):
		logger.Info("Starting interactive TUI mode...")

		buf := new(bytes.Buffer)
		tuiCtx := ctxlog.NewForTUI(ctx, buf)
		p.host.Output = nil

		var modelOpts []tui.ModelOption
		if cmd.Bool(autoQuitFlag) {
			modelOpts = append(modelOpts, tui.WithAutoQuit())
		}

		runner := tui.NewRunner(p.title, modelOpts)

		var execErr error

		res, execErr = runner.Run(tuiCtx, token.Request, func(ctx context.Context, sink progress.Sink) *batch.Result {
			return batch.NewOrchestrator(p.host, batch.WithSink(sink), batch.WithToken(token)).StartRun(ctx, p.request)
		})

		buf.WriteTo(cmd.ErrWriter) //nolint:errcheck

		if execErr != nil {
			logger.Error(fmt.Sprintf("TUI execution error: %s", execErr.Error()), "error", execErr.Error())
		}
	default:
		var sink progress.Sink = progress.NewConsoleSink(cmd.Writer, !cmd.Bool(quietFlag))
		if cmd.Bool(jsonFlag) {
			sink = progress.NewLogSink(ctxlog.New(ctx, ctxlog.JSONLogger))
		}

		res = batch.NewOrchestrator(p.host, batch.WithSink(sink), batch.WithToken(token)).StartRun(ctx, p.request)
	}

	if res == nil {
		return cli.Exit(cliExitStr, ExitFailed)
	}

	if outFileName := cmd.String(outFlag); outFileName != "" {
		if err := writeResult(outFileName, res); err != nil {
			logger.Error(fmt.Sprintf("Failed to write results to file %s: %s", outFileName, err.Error()))
			return cli.Exit(cliExitStr, ExitFailed)
		}

		logger.Info(fmt.Sprintf("Results written to %s", outFileName))
	}

	if err := res.WriteText(cmd.Writer, cmd.Bool(outputSuccessDetailsFlag)); err != nil {
		return cli.Exit("Failed to write results: "+err.Error(), ExitFailed)
	}

	if code := ExitCode(res); code != 0 {
		return cli.Exit(cliExitStr, code)
	}

	return nil
}

func writeResult(name string, res *batch.Result) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := res.WriteBinary(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}

	return f.Close()
}

// ExitCode maps the final state of a run to a process exit code.
func ExitCode(res *batch.Result) int {
	switch res.State {
	case progress.StateCompleted:
		return 0
	case progress.StateAborted:
		return ExitAborted
	default:
		return ExitFailed
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"text/template"
	"time"

	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/teereader"
)

const (
	waitDelay   = 5 * time.Second
	lastLineMax = 200
)

var (
	// ErrCommandNotConfigured is returned by OSHost.Run when no run command is set.
	ErrCommandNotConfigured = errors.New("host command not configured")
	// ErrTemplate is returned when a command argument template is invalid.
	ErrTemplate = errors.New("invalid command template")
	// ErrCouldNotStartProcess is returned when the host process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start host process")
	// ErrExitCode is returned when the host process exits with an unexpected code.
	ErrExitCode = errors.New("host process exited with unexpected code")
)

// Command describes one external process invocation.
// Path, Args, Env values and Cwd are text/template strings over Vars.
type Command struct {
	Path             string
	Args             []string
	Env              map[string]string
	Cwd              string
	SuccessExitCodes []int // Defaults to 0.
	AbortExitCodes   []int // Exit codes meaning the host saw an abort request.
}

// Vars are the values available to command templates.
type Vars struct {
	Script string
	Target string
}

// OSHost drives a host application through external commands.
// A nil Load or Save command makes that operation a no-op.
type OSHost struct {
	LoadCmd *Command
	RunCmd  *Command
	SaveCmd *Command
	Output  io.Writer // Receives the combined host output, if set.
}

var _ Host = (*OSHost)(nil)

// Load implements Host.
func (h *OSHost) Load(ctx context.Context, target string) error {
	if h.LoadCmd == nil {
		return nil
	}

	return h.exec(ctx, "load", h.LoadCmd, Vars{Target: target})
}

// Run implements Host.
func (h *OSHost) Run(ctx context.Context, script, target string) error {
	if h.RunCmd == nil {
		return ErrCommandNotConfigured
	}

	return h.exec(ctx, "run", h.RunCmd, Vars{Script: script, Target: target})
}

// Save implements Host.
func (h *OSHost) Save(ctx context.Context, target string) error {
	if h.SaveCmd == nil {
		return nil
	}

	return h.exec(ctx, "save", h.SaveCmd, Vars{Target: target})
}

func (h *OSHost) exec(ctx context.Context, op string, c *Command, v Vars) error {
	logger := ctxlog.Logger(ctx).With("hostOp", op, "script", v.Script, "target", v.Target)

	path, args, cwd, env, err := c.render(v)
	if err != nil {
		return err
	}

	logger.Debug("command info", "path", path, "cwd", cwd, "args", args)

	pr, pw := io.Pipe()
	tee := teereader.New(pr, teereader.DefaultMaxCapture)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = cwd
	cmd.Env = env
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.WaitDelay = waitDelay

	copied := make(chan struct{})

	go func() {
		defer close(copied)

		dst := io.Discard
		if h.Output != nil {
			dst = h.Output
		}

		_, _ = io.Copy(dst, tee)
	}()

	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		<-copied

		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", cmd.Process.Pid)

	waitErr := cmd.Wait()
	_ = pw.Close()
	<-copied

	code := cmd.ProcessState.ExitCode()
	logger.Debug("process finished", "exitCode", code)

	success := c.SuccessExitCodes
	if len(success) == 0 {
		success = []int{0}
	}

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%s %s: %w", op, describe(v), ctx.Err())
	case slices.Contains(c.AbortExitCodes, code):
		return fmt.Errorf("%w: exit code %d", ErrAbortObserved, code)
	case slices.Contains(success, code):
		return nil
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return fmt.Errorf("%s %s: %w", op, describe(v), waitErr)
	}

	msg := fmt.Sprintf("exit code %d", code)
	if last := tee.LastLine(lastLineMax); last != "" {
		msg += ": " + last
	}

	return fmt.Errorf("%w: %s", ErrExitCode, msg)
}

func describe(v Vars) string {
	if v.Script == "" {
		return v.Target
	}

	return v.Script + " on " + v.Target
}

// render expands every template of the command.
func (c *Command) render(v Vars) (string, []string, string, []string, error) {
	path, err := expand(c.Path, v)
	if err != nil {
		return "", nil, "", nil, err
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		if args[i], err = expand(a, v); err != nil {
			return "", nil, "", nil, err
		}
	}

	cwd, err := expand(c.Cwd, v)
	if err != nil {
		return "", nil, "", nil, err
	}

	env := os.Environ()

	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		val, err := expand(c.Env[k], v)
		if err != nil {
			return "", nil, "", nil, err
		}

		env = append(env, k+"="+val)
	}

	return path, args, cwd, env, nil
}

func expand(text string, v Vars) (string, error) {
	tmpl, err := template.New("arg").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Join(ErrTemplate, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", errors.Join(ErrTemplate, err)
	}

	return buf.String(), nil
}

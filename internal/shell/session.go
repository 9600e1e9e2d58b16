// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/matt-FFFFFF/maxbatch/internal/listfile"
)

var (
	// ErrUnknownCommand is returned for a command the shell does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command is given the wrong arguments.
	ErrUsage = errors.New("usage")
)

// RunFunc starts a batch with the inputs of the session.
type RunFunc func(ctx context.Context, p batch.InputProvider) *batch.Result

// Session is the state of an interactive shell.
type Session struct {
	scripts []string
	targets []string
	save    bool
	parser  *listfile.Parser
	run     RunFunc
	last    *batch.Result
}

var _ batch.InputProvider = (*Session)(nil)

// NewSession creates an empty session. Saving is off.
func NewSession(parser *listfile.Parser, run RunFunc) *Session {
	return &Session{parser: parser, run: run}
}

// OrderedScripts implements batch.InputProvider.
func (s *Session) OrderedScripts() []string { return s.scripts }

// OrderedTargets implements batch.InputProvider.
func (s *Session) OrderedTargets() []string { return s.targets }

// SaveAfterEach implements batch.InputProvider.
func (s *Session) SaveAfterEach() bool { return s.save }

// LastResult returns the result of the most recent run.
func (s *Session) LastResult() *batch.Result { return s.last }

type command struct {
	usage string
	help  string
	fn    func(s *Session, ctx context.Context, w io.Writer, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"add":        {"add <path>...", "add scripts and targets, sorted by extension", (*Session).cmdAdd},
		"add-script": {"add-script <path>...", "add scripts", (*Session).cmdAddScript},
		"add-target": {"add-target <path>...", "add targets", (*Session).cmdAddTarget},
		"remove":     {"remove <path>...", "remove scripts or targets", (*Session).cmdRemove},
		"clear":      {"clear [scripts|targets]", "empty one or both lists", (*Session).cmdClear},
		"import":     {"import <list file>...", "add the contents of list files", (*Session).cmdImport},
		"list":       {"list", "show the lists and the save setting", (*Session).cmdList},
		"save":       {"save on|off", "save each target after its scripts ran", (*Session).cmdSave},
		"run":        {"run", "process every script against every target", (*Session).cmdRun},
		"help":       {"help", "show this help", (*Session).cmdHelp},
	}
}

// Commands returns the command names, for completion.
func Commands() []string {
	names := make([]string, 0, len(commands)+2)
	for name := range commands {
		names = append(names, name)
	}

	names = append(names, "exit", "quit")
	slices.Sort(names)

	return names
}

// Execute runs one input line, writing its output to w.
// It returns true when the line asks the shell to exit.
func (s *Session) Execute(ctx context.Context, w io.Writer, line string) (bool, error) {
	fields := listfile.Tokens(line)
	if len(fields) == 0 {
		return false, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	if name == "exit" || name == "quit" {
		return true, nil
	}

	c, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, name)
	}

	return false, c.fn(s, ctx, w, args)
}

func (s *Session) cmdAdd(_ context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return usage("add")
	}

	var (
		scripts, targets []string
		ignored          int
	)

	for _, a := range args {
		switch {
		case s.parser.IsScript(a) && s.parser.Exister.Exists(a):
			scripts = append(scripts, a)
		case s.parser.IsTarget(a) && s.parser.Exister.Exists(a):
			targets = append(targets, a)
		default:
			ignored++
		}
	}

	var ns, nt int

	s.scripts, ns = listfile.AppendUnique(s.scripts, scripts...)
	s.targets, nt = listfile.AppendUnique(s.targets, targets...)

	fmt.Fprintf(w, "Added %d script file(s) and %d target file(s) to the list.\n", ns, nt) //nolint:errcheck

	if ignored > 0 {
		fmt.Fprintf(w, "Ignored %d path(s) that are missing or of an unknown type.\n", ignored) //nolint:errcheck
	}

	return nil
}

// AddScripts adds the existing paths to the scripts and returns how many were new.
func (s *Session) AddScripts(paths ...string) int {
	var n int

	s.scripts, n = listfile.AppendUnique(s.scripts, s.existing(paths)...)

	return n
}

// AddTargets adds the existing paths to the targets and returns how many were new.
func (s *Session) AddTargets(paths ...string) int {
	var n int

	s.targets, n = listfile.AppendUnique(s.targets, s.existing(paths)...)

	return n
}

// SetSave turns saving after each target on or off.
func (s *Session) SetSave(v bool) { s.save = v }

// Import adds the contents of list files and returns how many entries were new.
// Entries of readable files are added even when another file fails.
func (s *Session) Import(ctx context.Context, paths ...string) (int, error) {
	l, err := s.parser.ReadFiles(ctx, paths...)

	var ns, nt int

	s.scripts, ns = listfile.AppendUnique(s.scripts, l.Scripts...)
	s.targets, nt = listfile.AppendUnique(s.targets, l.Targets...)

	return ns + nt, err
}

func (s *Session) cmdAddScript(_ context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return usage("add-script")
	}

	fmt.Fprintf(w, "Added %d script file(s) to the list.\n", s.AddScripts(args...)) //nolint:errcheck

	return nil
}

func (s *Session) cmdAddTarget(_ context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return usage("add-target")
	}

	fmt.Fprintf(w, "Added %d target file(s) to the list.\n", s.AddTargets(args...)) //nolint:errcheck

	return nil
}

func (s *Session) existing(paths []string) []string {
	return slices.DeleteFunc(slices.Clone(paths), func(p string) bool {
		return !s.parser.Exister.Exists(p)
	})
}

func (s *Session) cmdRemove(_ context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return usage("remove")
	}

	before := len(s.scripts) + len(s.targets)
	s.scripts = listfile.Remove(s.scripts, args...)
	s.targets = listfile.Remove(s.targets, args...)

	fmt.Fprintf(w, "Removed %d file(s).\n", before-len(s.scripts)-len(s.targets)) //nolint:errcheck

	return nil
}

func (s *Session) cmdClear(_ context.Context, w io.Writer, args []string) error {
	which := ""
	if len(args) > 0 {
		which = strings.ToLower(args[0])
	}

	switch which {
	case "":
		s.scripts, s.targets = nil, nil
	case "scripts":
		s.scripts = nil
	case "targets":
		s.targets = nil
	default:
		return usage("clear")
	}

	fmt.Fprintln(w, "Cleared.") //nolint:errcheck

	return nil
}

func (s *Session) cmdImport(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return usage("import")
	}

	n, err := s.Import(ctx, args...)
	fmt.Fprintf(w, "Loaded %d files from list.\n", n) //nolint:errcheck

	return err
}

func (s *Session) cmdList(_ context.Context, w io.Writer, _ []string) error {
	writeList(w, "Script files", s.scripts)
	writeList(w, "Target files", s.targets)

	fmt.Fprintf(w, "Save after each: %s\n", onOff(s.save)) //nolint:errcheck

	return nil
}

func writeList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(items)) //nolint:errcheck

	for i, it := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, it) //nolint:errcheck
	}
}

func (s *Session) cmdSave(_ context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		return usage("save")
	}

	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		s.SetSave(true)
	case "off", "false", "no":
		s.SetSave(false)
	default:
		return usage("save")
	}

	fmt.Fprintf(w, "Save after each: %s\n", onOff(s.save)) //nolint:errcheck

	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}

	return "off"
}

func (s *Session) cmdRun(ctx context.Context, w io.Writer, _ []string) error {
	if s.run == nil {
		return errors.New("running is not available in this shell")
	}

	s.last = s.run(ctx, s)

	return s.last.WriteText(w, false)
}

func (s *Session) cmdHelp(_ context.Context, w io.Writer, _ []string) error {
	for _, name := range Commands() {
		c, ok := commands[name]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "  %-26s %s\n", c.usage, c.help) //nolint:errcheck
	}

	fmt.Fprintf(w, "  %-26s %s\n", "exit, quit", "leave the shell") //nolint:errcheck

	return nil
}

func usage(name string) error {
	return fmt.Errorf("%w: %s", ErrUsage, commands[name].usage)
}

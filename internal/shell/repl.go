// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/maxbatch/internal/color"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/peterh/liner"
)

// Prompt is shown before every input line.
const Prompt = "maxbatch> "

// Run reads commands from the terminal until exit, end of input or
// Ctrl+C at the prompt. Command errors are printed and the loop continues.
func Run(ctx context.Context, s *Session, w io.Writer) error {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	fmt.Fprintln(w, "Type 'help' for a list of commands.") //nolint:errcheck

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := line.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		quit, err := s.Execute(ctx, w, input)
		if err != nil {
			ctxlog.Debug(ctx, "shell command failed", "input", input, "error", err)
			fmt.Fprintln(w, color.Colorize(err.Error(), color.FgRed)) //nolint:errcheck
		}

		if quit {
			return nil
		}
	}
}

func complete(input string) []string {
	if strings.Contains(input, " ") {
		return nil
	}

	var out []string

	for _, c := range Commands() {
		if strings.HasPrefix(c, strings.ToLower(input)) {
			out = append(out, c)
		}
	}

	return out
}

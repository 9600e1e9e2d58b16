// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements the show command.
package show

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/urfave/cli/v3"
)

const (
	fileArg                  = "file"
	outputSuccessDetailsFlag = "output-success-details"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrWriteResults is returned when the results cannot be written to stdout.
	ErrWriteResults = errors.New("failed to write results to stdout")
)

// ShowCmd prints a result saved by run --out.
var ShowCmd = &cli.Command{
	Name:        "show",
	Usage:       "Show previously saved results",
	Description: "Show a result file written by the run command's --out flag.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      fileArg,
			UsageText: "RESULTFILE",
		},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        outputSuccessDetailsFlag,
			Aliases:     []string{"success"},
			Usage:       "Include successful steps in the output",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		name := cmd.StringArg(fileArg)
		if name == "" {
			return cli.Exit("Please provide a result file to show", 1)
		}

		file, err := os.Open(name)
		if err != nil {
			return errors.Join(ErrReadFile, err)
		}
		defer file.Close() //nolint:errcheck

		res, err := batch.ReadBinary(file)
		if err != nil {
			return err
		}

		if err := res.WriteText(cmd.Writer, cmd.Bool(outputSuccessDetailsFlag)); err != nil {
			return errors.Join(ErrWriteResults, err)
		}

		return nil
	},
}

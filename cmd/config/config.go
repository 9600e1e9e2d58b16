// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config implements the config command.
package config

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/maxbatch/internal/config"
	"github.com/matt-FFFFFF/maxbatch/internal/schema"
	"github.com/urfave/cli/v3"
)

const (
	hclFlag      = "hcl"
	schemaFlag   = "schema"
	validateFlag = "validate"
)

// ConfigCmd prints an example definition, or validates one.
var ConfigCmd = &cli.Command{
	Name:  "config",
	Usage: "Get info on the run definition format",
	Description: `Print an example run definition in YAML, or HCL with --hcl.
With --schema, print the JSON Schema of the YAML format for editor support.
With --validate, fetch and check a definition instead.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:     hclFlag,
			Usage:    "Print the example in HCL instead of YAML",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     schemaFlag,
			Usage:    "Print the JSON Schema of the definition format",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     validateFlag,
			Usage:    "URL of a definition to validate. Supports Hashicorp's go-getter syntax.",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if url := cmd.String(validateFlag); url != "" {
		def, err := config.Load(ctx, url)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		fmt.Fprintf(cmd.Writer, "%s is valid: %d script(s), %d target(s), %d list file(s)\n", //nolint:errcheck
			url, len(def.Scripts), len(def.Targets), len(def.ListFiles))

		return nil
	}

	if cmd.Bool(schemaFlag) {
		g := schema.NewGenerator("maxbatch run definition", "Scripts, targets and host commands for a maxbatch run")
		return g.WriteJSONSchema(cmd.Writer, config.Definition{})
	}

	example := config.ExampleYAML
	if cmd.Bool(hclFlag) {
		example = config.ExampleHCL
	}

	_, err := fmt.Fprint(cmd.Writer, example)

	return err
}

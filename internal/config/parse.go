// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrInvalidYaml is returned when a YAML definition cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidHcl is returned when an HCL definition cannot be decoded.
	ErrInvalidHcl = errors.New("invalid HCL")
)

// Format is the syntax of a definition file.
type Format int

const (
	// FormatYAML is the default format.
	FormatYAML Format = iota
	// FormatHCL is used for file names ending in .hcl.
	FormatHCL
)

// FormatOf returns the format implied by a file name or go-getter URL.
func FormatOf(name string) Format {
	name, _, _ = strings.Cut(name, "?")
	if strings.EqualFold(path.Ext(name), ".hcl") {
		return FormatHCL
	}

	return FormatYAML
}

// Parse decodes and validates a definition.
func Parse(format Format, data []byte) (*Definition, error) {
	def := &Definition{}

	switch format {
	case FormatHCL:
		if err := hclsimple.Decode("definition.hcl", data, evalContext(), def); err != nil {
			return nil, errors.Join(ErrInvalidHcl, err)
		}
	default:
		if err := yaml.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return def, nil
}

// Load fetches, decodes and validates the definition at url.
func Load(ctx context.Context, url string) (*Definition, error) {
	data, err := Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	def, err := Parse(FormatOf(url), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	ctxlog.Debug(ctx, "definition loaded", "url", url, "name", def.Name,
		"scripts", len(def.Scripts), "targets", len(def.Targets), "listFiles", len(def.ListFiles))

	return def, nil
}

// evalContext exposes the process environment to HCL expressions as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

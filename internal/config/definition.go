// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/matt-FFFFFF/maxbatch/internal/host"
	"github.com/matt-FFFFFF/maxbatch/internal/listfile"
)

// ErrListFiles is returned when the list files of a definition cannot be read.
var ErrListFiles = errors.New("failed to read list files")

// Definition is the root of a run definition.
type Definition struct {
	Name          string          `yaml:"name" hcl:"name,optional" validate:"max=128" docdesc:"Name of the run, shown as the TUI title"`
	Description   string          `yaml:"description" hcl:"description,optional" docdesc:"Description of what the run does"`
	Scripts       []string        `yaml:"scripts" hcl:"scripts,optional" validate:"dive,required" docdesc:"Script files, run in order against every target"`
	Targets       []string        `yaml:"targets" hcl:"targets,optional" validate:"dive,required" docdesc:"Target files, processed in order"`
	ListFiles     []string        `yaml:"list_files" hcl:"list_files,optional" validate:"dive,required" docdesc:"Files listing more scripts and targets"`
	SaveAfterEach bool            `yaml:"save_after_each" hcl:"save_after_each,optional" docdesc:"Save each target after all scripts ran against it"`
	Host          *HostDefinition `yaml:"host" hcl:"host,block" docdesc:"Commands that drive the host application"`
}

// HostDefinition holds the commands that drive the host application.
type HostDefinition struct {
	Load *CommandDefinition `yaml:"load" hcl:"load,block" docdesc:"Loads a target"`
	Run  *CommandDefinition `yaml:"run" hcl:"run,block" validate:"required" docdesc:"Runs a script against the loaded target"`
	Save *CommandDefinition `yaml:"save" hcl:"save,block" docdesc:"Saves a target"`
}

// CommandDefinition describes one host command. Path, Args, Env values and
// Cwd may reference {{.Script}} and {{.Target}}.
type CommandDefinition struct {
	Path             string            `yaml:"path" hcl:"path" validate:"required" docdesc:"Executable to start"`
	Args             []string          `yaml:"args" hcl:"args,optional"`
	Env              map[string]string `yaml:"env" hcl:"env,optional"`
	Cwd              string            `yaml:"cwd" hcl:"cwd,optional" docdesc:"Working directory"`
	SuccessExitCodes []int             `yaml:"success_exit_codes" hcl:"success_exit_codes,optional" validate:"dive,min=0,max=255" docdesc:"Exit codes meaning success, default 0"`
	AbortExitCodes   []int             `yaml:"abort_exit_codes" hcl:"abort_exit_codes,optional" validate:"dive,min=0,max=255" docdesc:"Exit codes meaning the host saw an abort request"`
}

// Request builds the run request: the listed scripts and targets first,
// then the entries of each list file, without duplicates.
func (d *Definition) Request(ctx context.Context, p *listfile.Parser) (batch.RunRequest, error) {
	scripts, _ := listfile.AppendUnique(nil, d.Scripts...)
	targets, _ := listfile.AppendUnique(nil, d.Targets...)

	req := batch.RunRequest{Scripts: scripts, Targets: targets, Save: d.SaveAfterEach}

	if len(d.ListFiles) == 0 {
		return req, nil
	}

	l, err := p.ReadFiles(ctx, d.ListFiles...)
	if err != nil {
		return req, errors.Join(ErrListFiles, err)
	}

	req.Scripts, _ = listfile.AppendUnique(req.Scripts, l.Scripts...)
	req.Targets, _ = listfile.AppendUnique(req.Targets, l.Targets...)

	return req, nil
}

// OSHost returns the host described by the definition, or nil if there is none.
func (d *Definition) OSHost() *host.OSHost {
	if d.Host == nil {
		return nil
	}

	return &host.OSHost{
		LoadCmd: d.Host.Load.command(),
		RunCmd:  d.Host.Run.command(),
		SaveCmd: d.Host.Save.command(),
	}
}

func (c *CommandDefinition) command() *host.Command {
	if c == nil {
		return nil
	}

	return &host.Command{
		Path:             c.Path,
		Args:             c.Args,
		Env:              c.Env,
		Cwd:              c.Cwd,
		SuccessExitCodes: c.SuccessExitCodes,
		AbortExitCodes:   c.AbortExitCodes,
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package host

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncs_NilIsSuccess(t *testing.T) {
	f := &Funcs{}
	ctx := context.Background()

	require.NoError(t, f.Load(ctx, "a.max"))
	require.NoError(t, f.Run(ctx, "s.ms", "a.max"))
	require.NoError(t, f.Save(ctx, "a.max"))
}

func TestFuncs_Delegates(t *testing.T) {
	var got []string

	boom := errors.New("boom")
	f := &Funcs{
		LoadFunc: func(_ context.Context, target string) error {
			got = append(got, "load "+target)
			return nil
		},
		RunFunc: func(_ context.Context, script, target string) error {
			got = append(got, "run "+script+" "+target)
			return boom
		},
		SaveFunc: func(_ context.Context, target string) error {
			got = append(got, "save "+target)
			return nil
		},
	}

	ctx := context.Background()
	require.NoError(t, f.Load(ctx, "a.max"))
	require.ErrorIs(t, f.Run(ctx, "s.ms", "a.max"), boom)
	require.NoError(t, f.Save(ctx, "a.max"))

	assert.Equal(t, []string{"load a.max", "run s.ms a.max", "save a.max"}, got)
}

func TestFsExister(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scenes/a.max", []byte("x"), 0o644))
	require.NoError(t, fs.MkdirAll("/scenes/dir.max", 0o755))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	e := NewExister()

	assert.True(t, e.Exists("/scenes/a.max"))
	assert.False(t, e.Exists("/scenes/b.max"))
	assert.False(t, e.Exists("/scenes/dir.max"))
	assert.False(t, e.Exists(""))
}

func skipWithoutShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func shell(script string) *Command {
	return &Command{Path: "/bin/sh", Args: []string{"-c", script}}
}

func TestOSHost_RunExpandsTemplates(t *testing.T) {
	skipWithoutShell(t)

	out := &bytes.Buffer{}
	h := &OSHost{
		RunCmd: &Command{
			Path: "/bin/sh",
			Args: []string{"-c", `echo "$MB_MODE {{.Script}} {{.Target}}"`},
			Env:  map[string]string{"MB_MODE": "batch-{{.Target}}"},
		},
		Output: out,
	}

	require.NoError(t, h.Run(context.Background(), "fix.ms", "a.max"))
	assert.Equal(t, "batch-a.max fix.ms a.max\n", out.String())
}

func TestOSHost_NoOpLoadAndSave(t *testing.T) {
	h := &OSHost{}
	ctx := context.Background()

	require.NoError(t, h.Load(ctx, "a.max"))
	require.NoError(t, h.Save(ctx, "a.max"))
	require.ErrorIs(t, h.Run(ctx, "s.ms", "a.max"), ErrCommandNotConfigured)
}

func TestOSHost_ExitCodes(t *testing.T) {
	skipWithoutShell(t)

	tests := []struct {
		name    string
		cmd     *Command
		wantErr error
		wantMsg string
	}{
		{
			name: "success",
			cmd:  shell("exit 0"),
		},
		{
			name: "custom success code",
			cmd:  &Command{Path: "/bin/sh", Args: []string{"-c", "exit 4"}, SuccessExitCodes: []int{4}},
		},
		{
			name:    "failure reports last line",
			cmd:     shell("echo starting; echo 'missing modifier' >&2; exit 2"),
			wantErr: ErrExitCode,
			wantMsg: "exit code 2: missing modifier",
		},
		{
			name:    "abort code",
			cmd:     &Command{Path: "/bin/sh", Args: []string{"-c", "exit 3"}, AbortExitCodes: []int{3}},
			wantErr: ErrAbortObserved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &OSHost{RunCmd: tt.cmd}
			err := h.Run(context.Background(), "s.ms", "a.max")

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestOSHost_BadTemplate(t *testing.T) {
	h := &OSHost{RunCmd: &Command{Path: "/bin/sh", Args: []string{"{{.Nope}}"}}}

	err := h.Run(context.Background(), "s.ms", "a.max")
	require.ErrorIs(t, err, ErrTemplate)
}

func TestOSHost_StartFailure(t *testing.T) {
	h := &OSHost{RunCmd: &Command{Path: "/definitely/not/here"}}

	err := h.Run(context.Background(), "s.ms", "a.max")
	require.ErrorIs(t, err, ErrCouldNotStartProcess)
}

func TestOSHost_ContextCancelKillsProcess(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	h := &OSHost{LoadCmd: shell("exec sleep 10")}

	start := time.Now()
	err := h.Load(ctx, "a.max")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

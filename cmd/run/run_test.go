// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/maxbatch/internal/batch"
	"github.com/matt-FFFFFF/maxbatch/internal/host"
	"github.com/matt-FFFFFF/maxbatch/internal/listfile"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memParser(t *testing.T, files map[string]string) *listfile.Parser {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&host.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	return listfile.NewParser()
}

func TestBuildPlan_FromDefinition(t *testing.T) {
	parser := memParser(t, map[string]string{
		"/s/a.ms":    "",
		"/s/b.ms":    "",
		"/t/one.max": "",
		"/t/two.max": "",
		"/extra.txt": "/s/b.ms /t/two.max /t/one.max",
	})

	p, err := buildPlan(context.Background(), options{
		definitionURL: "./testdata/definition.yaml",
		targets:       []string{"/t/one.max"},
		listFiles:     []string{"/extra.txt"},
		save:          true,
	}, parser)
	require.NoError(t, err)

	assert.Equal(t, "test pass", p.title)
	assert.Equal(t, batch.RunRequest{
		Scripts: []string{"/s/a.ms", "/s/b.ms"},
		Targets: []string{"/t/one.max", "/t/two.max"},
		Save:    true,
	}, p.request)

	require.NotNil(t, p.host.RunCmd)
	assert.Equal(t, "/bin/sh", p.host.RunCmd.Path)
	assert.Equal(t, []string{"-c", "exit 0"}, p.host.RunCmd.Args)
	require.NotNil(t, p.host.LoadCmd)
	assert.Nil(t, p.host.SaveCmd)
}

func TestBuildPlan_FlagsOverrideHost(t *testing.T) {
	parser := memParser(t, nil)

	p, err := buildPlan(context.Background(), options{
		definitionURL: "./testdata/definition.yaml",
		runCmd:        `hostcli --open "{{.Target}}" --script "{{.Script}}"`,
		saveCmd:       "hostcli --save",
		abortCodes:    []int{3},
	}, parser)
	require.NoError(t, err)

	assert.Equal(t, &host.Command{
		Path:           "hostcli",
		Args:           []string{"--open", "{{.Target}}", "--script", "{{.Script}}"},
		AbortExitCodes: []int{3},
	}, p.host.RunCmd)
	assert.Equal(t, "/bin/true", p.host.LoadCmd.Path)
	assert.Equal(t, "hostcli", p.host.SaveCmd.Path)
}

func TestBuildPlan_FlagsOnly(t *testing.T) {
	parser := memParser(t, nil)

	p, err := buildPlan(context.Background(), options{
		scripts: []string{"/s/a.ms", "/s/a.ms"},
		targets: []string{"/t/one.max"},
		runCmd:  "hostcli",
	}, parser)
	require.NoError(t, err)

	assert.Equal(t, defaultTitle, p.title)
	assert.Equal(t, []string{"/s/a.ms"}, p.request.Scripts)
	assert.False(t, p.request.Save)
	assert.Nil(t, p.host.LoadCmd)
}

func TestBuildPlan_Errors(t *testing.T) {
	parser := memParser(t, nil)

	_, err := buildPlan(context.Background(), options{scripts: []string{"/s/a.ms"}}, parser)
	require.ErrorIs(t, err, ErrNoHost)

	_, err = buildPlan(context.Background(), options{definitionURL: "./testdata/no_host.yaml"}, parser)
	require.ErrorIs(t, err, ErrNoHost)

	_, err = buildPlan(context.Background(), options{runCmd: "hostcli", listFiles: []string{"/missing.txt"}}, parser)
	require.ErrorIs(t, err, ErrBuildRequest)
	require.ErrorIs(t, err, listfile.ErrReadListFile)

	_, err = buildPlan(context.Background(), options{definitionURL: "./testdata/absent.yaml"}, parser)
	require.Error(t, err)
}

func TestCommandFromFlag(t *testing.T) {
	assert.Nil(t, commandFromFlag("   ", nil))

	c := commandFromFlag(`"C:\Program Files\host.exe" -q`, nil)
	require.NotNil(t, c)
	assert.Equal(t, `C:\Program Files\host.exe`, c.Path)
	assert.Equal(t, []string{"-q"}, c.Args)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		state progress.State
		code  int
	}{
		{progress.StateCompleted, 0},
		{progress.StateCompletedWithErrors, ExitFailed},
		{progress.StateEmptyInput, ExitFailed},
		{progress.StateAborted, ExitAborted},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(&batch.Result{State: tt.state}))
		})
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/maxbatch/internal/config"
	"github.com/matt-FFFFFF/maxbatch/internal/host"
	"github.com/matt-FFFFFF/maxbatch/internal/listfile"
	"github.com/matt-FFFFFF/maxbatch/internal/shell"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefinition(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, f := range []string{`/s/a b.ms`, "/s/c.ms", "/t/one.max", "/t/two.max"} {
		require.NoError(t, afero.WriteFile(fs, f, nil, 0o644))
	}

	require.NoError(t, afero.WriteFile(fs, "/list.txt", []byte("/s/c.ms /t/two.max"), 0o644))

	stubs := gostub.Stub(&host.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	s := shell.NewSession(listfile.NewParser(), nil)
	applyDefinition(context.Background(), s, &config.Definition{
		Scripts:       []string{"/s/a b.ms", "/s/missing.ms"},
		Targets:       []string{"/t/one.max"},
		ListFiles:     []string{"/list.txt", "/absent.txt"},
		SaveAfterEach: true,
	})

	assert.Equal(t, []string{"/s/a b.ms", "/s/c.ms"}, s.OrderedScripts())
	assert.Equal(t, []string{"/t/one.max", "/t/two.max"}, s.OrderedTargets())
	assert.True(t, s.SaveAfterEach())
}

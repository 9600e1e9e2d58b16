// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package host

import (
	"github.com/spf13/afero"
)

// FsFactory returns the filesystem used for existence checks.
// Tests replace it with an in-memory filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Exister reports whether a script or target path exists.
type Exister interface {
	Exists(path string) bool
}

// ExisterFunc adapts a function to Exister.
type ExisterFunc func(path string) bool

// Exists implements Exister.
func (f ExisterFunc) Exists(path string) bool {
	return f(path)
}

// FsExister checks paths against an afero filesystem.
type FsExister struct {
	Fs afero.Fs
}

// NewExister returns an FsExister over FsFactory().
func NewExister() *FsExister {
	return &FsExister{Fs: FsFactory()}
}

// Exists implements Exister. Directories do not count as existing files.
func (e *FsExister) Exists(path string) bool {
	if path == "" {
		return false
	}

	fi, err := e.Fs.Stat(path)
	if err != nil {
		return false
	}

	return !fi.IsDir()
}

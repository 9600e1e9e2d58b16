// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/host"
)

// ErrReadListFile is returned when a list file cannot be read.
var ErrReadListFile = errors.New("failed to read list file")

var tokenRegex = regexp.MustCompile(`"([^"]+)"|\S+`)

var (
	// DefaultScriptExts are the extensions classified as scripts.
	DefaultScriptExts = []string{".ms", ".mse"}
	// DefaultTargetExts are the extensions classified as targets.
	DefaultTargetExts = []string{".max"}
)

// List is the content of one or more list files.
type List struct {
	Scripts []string
	Targets []string
	Ignored int // Tokens with another extension, or naming a missing file.
}

// Total returns the number of scripts and targets.
func (l *List) Total() int {
	return len(l.Scripts) + len(l.Targets)
}

// Parser classifies list file tokens.
type Parser struct {
	ScriptExts []string
	TargetExts []string
	Exister    host.Exister
}

// NewParser returns a Parser with the default extensions, checking
// existence against host.FsFactory().
func NewParser() *Parser {
	return &Parser{
		ScriptExts: DefaultScriptExts,
		TargetExts: DefaultTargetExts,
		Exister:    host.NewExister(),
	}
}

// Tokens splits list file content into normalised paths.
func Tokens(content string) []string {
	return Fields(strings.ReplaceAll(content, `\`, "/"))
}

// Fields splits s on whitespace. Double quotes group a field that contains
// spaces and are removed.
func Fields(s string) []string {
	matches := tokenRegex.FindAllStringSubmatch(s, -1)
	fields := make([]string, 0, len(matches))

	for _, m := range matches {
		if m[1] != "" {
			fields = append(fields, m[1])
			continue
		}

		fields = append(fields, m[0])
	}

	return fields
}

// IsScript reports whether path has a script extension.
func (p *Parser) IsScript(path string) bool { return hasExt(path, p.ScriptExts) }

// IsTarget reports whether path has a target extension.
func (p *Parser) IsTarget(path string) bool { return hasExt(path, p.TargetExts) }

// Parse reads list file content from r into l.
func (p *Parser) Parse(r io.Reader, l *List) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return errors.Join(ErrReadListFile, err)
	}

	for _, tok := range Tokens(string(b)) {
		var dst *[]string

		switch {
		case p.IsScript(tok):
			dst = &l.Scripts
		case p.IsTarget(tok):
			dst = &l.Targets
		}

		if dst == nil || !p.Exister.Exists(tok) {
			l.Ignored++
			continue
		}

		var added int
		if *dst, added = AppendUnique(*dst, tok); added == 0 {
			l.Ignored++
		}
	}

	return nil
}

// ReadFiles parses every list file in order. Files that cannot be read are
// reported together; the entries of the others are still returned.
func (p *Parser) ReadFiles(ctx context.Context, paths ...string) (*List, error) {
	var (
		result error
		fs     = host.FsFactory()
		l      = &List{}
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return l, err
		}

		f, err := fs.Open(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: %s: %w", ErrReadListFile, path, err))
			continue
		}

		err = p.Parse(f, l)
		_ = f.Close()

		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}

		ctxlog.Debug(ctx, "list file read", "path", path, "scripts", len(l.Scripts), "targets", len(l.Targets))
	}

	return l, result
}

// AppendUnique appends the paths not already in list, comparing cleaned
// absolute paths (case-insensitively on Windows). It returns the new list
// and the number of paths added.
func AppendUnique(list []string, paths ...string) ([]string, int) {
	seen := make(map[string]struct{}, len(list)+len(paths))
	for _, p := range list {
		seen[Key(p)] = struct{}{}
	}

	added := 0

	for _, p := range paths {
		k := Key(p)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		list = append(list, p)
		added++
	}

	return list, added
}

// Remove returns list without the entries matching any of paths.
func Remove(list []string, paths ...string) []string {
	drop := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		drop[Key(p)] = struct{}{}
	}

	return slices.DeleteFunc(slices.Clone(list), func(p string) bool {
		_, ok := drop[Key(p)]
		return ok
	})
}

// Key is the comparison key of a path.
func Key(p string) string {
	if abs, err := filepath.Abs(filepath.FromSlash(p)); err == nil {
		p = abs
	}

	p = filepath.Clean(p)

	if runtime.GOOS == "windows" {
		p = strings.ToLower(p)
	}

	return p
}

func hasExt(p string, exts []string) bool {
	ext := filepath.Ext(p)

	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

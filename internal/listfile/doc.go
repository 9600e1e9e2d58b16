// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package listfile reads plain-text list files naming scripts and targets.
//
// A list file is a sequence of tokens separated by whitespace. A token that
// contains spaces is wrapped in double quotes. Backslashes are treated as
// path separators. Tokens are sorted into scripts and targets by their
// extension; anything else, and any path that does not exist, is ignored.
//
//	"C:\Projects\Shot 01\scene.max" D:/lib/fix_materials.ms
//	D:/lib/render_setup.ms
package listfile

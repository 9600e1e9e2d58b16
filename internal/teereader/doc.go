// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader captures the output of a host process while it is being
// read. It keeps a bounded copy of everything read and the last complete
// line, which is what error messages and the terminal UI show.
package teereader

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds process-wide state shared by the subcommands.
// The signal handler is installed by main before a subcommand is chosen,
// so the abort token it drives has to live outside any one command.
package cmdstate

import "github.com/matt-FFFFFF/maxbatch/internal/batch"

// Token is requested by the first interrupt signal and polled by every run.
var Token = batch.NewToken()

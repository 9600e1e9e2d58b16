// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package host defines the operations the batch orchestrator invokes on the
// host application: load a target, run a script against it, save it.
//
// OSHost drives a real host through external command templates.
// Funcs adapts plain functions, which is what tests and embedders use.
package host

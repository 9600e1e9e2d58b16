// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui shows a running batch in the terminal: the current activity,
// a progress bar with the estimated time remaining, and the tail of the log.
//
// Pressing a or esc asks the batch to stop after the current operation.
// Pressing ctrl+c twice cancels it outright.
package tui

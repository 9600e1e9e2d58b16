// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell is an interactive line editor for building a batch:
// add and remove scripts and targets, import list files, toggle saving and
// start runs. A Session holds the lists and implements batch.InputProvider.
package shell

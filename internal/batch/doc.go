// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch runs an ordered list of scripts against an ordered list of
// targets inside a host application.
//
// For every target the orchestrator loads it, runs every script against it
// and optionally saves it. Failures are recorded and the batch carries on;
// only an abort request, polled at fixed checkpoints, stops a run early.
// Everything the run does is reported to a progress.Sink.
package batch

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads run definitions.
//
// A run definition names the scripts, targets and list files of a batch,
// whether to save each target, and the commands used to drive the host.
// Definitions are YAML, or HCL when the file name ends in .hcl. HCL
// definitions can read environment variables through the env object:
//
//	scripts = ["${env.LIB}/fix_materials.ms"]
//
// Definitions can be fetched from anywhere go-getter supports.
package config

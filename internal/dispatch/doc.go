// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch invokes the engine entry points selected by a resolved
// task configuration.
//
// # Order
//
// Entry points run in a fixed precedence: key generation, scanner,
// cartography, health check, graph, health check consolidation, graph
// consolidation, report regeneration, report reload, demo reports and upload.
// The first failing entry point ends the run; later steps are marked
// Skipped and the engine is not asked to complete.
//
// # Key Types
//
//   - Step: one entry point invocation with its ID, status and timing
//   - Dispatcher: runs a plan and keeps its steps for inspection
//
// # Usage
//
//	ok := dispatch.Run(ctx, eng, &engine.Job{Config: cfg, Shared: shared})
package dispatch

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package task holds the data model shared by both resolution paths of adaudit.
//
// A run is described by two records:
//
//   - Config: the per-run task configuration (intents, connection
//     parameters, report and notification parameters).
//   - Shared: collaborator-wide settings (connection protocol, graph limits,
//     scanner limits, logging switches) that external engines read at
//     dispatch time.
//
// # Key Types
//
//   - Intent / Intents: closed set of task selectors and a bit set over them
//   - Protocol, ExportLevel, ScanMode: closed enums with exhaustive token tables
//   - Credential: explicit credential (absent means integrated authentication)
//
// # Usage
//
//	cfg := task.NewConfig()
//	shared := task.NewShared()
//	cfg.Intents.Add(task.IntentHealthCheck)
//	cfg.Server = "corp.example.org"
//	if cfg.Intents.NeedsDirectory() { ... }
package task

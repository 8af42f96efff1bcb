// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine is the boundary to the task execution engine.
//
// Directory enumeration, scoring, scanning and report rendering live in an
// external engine. This package defines what the front end hands to it (a
// Job), how it is reached (the Engine interface), the scanner catalog shown
// by the menus and help, and the license terms checked around resolution.
//
// # Key Types
//
//   - Engine: one Run entry point per intent, plus Complete
//   - Command: runs an external executable with a YAML job manifest
//   - Preview: prints the planned tasks when no executable is configured
//   - Catalog: registered scanners, listed in sorted order
//   - License: end of support and domain limitation
package engine

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the adaudit packages.
//
// # Key Functions
//
//   - WriteFileAtomic: crash-safe file writing with fsync, used when saving
//     the configuration file
//   - MatchWildcard: "*" and "?" matching used for license domain limitations
//   - StringWidth, PadRight: display-width aware alignment for help and menus
package util

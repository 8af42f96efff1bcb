// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !linux && !windows
// +build !linux,!windows

package detect

// platformDomain has no platform source here; the resolver probe still
// applies.
func platformDomain() string {
	return ""
}

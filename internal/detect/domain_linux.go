// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build linux
// +build linux

package detect

import "golang.org/x/sys/unix"

// platformDomain reads the kernel domain name (set by NIS or the join tooling).
func platformDomain() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Domainname[:])
}

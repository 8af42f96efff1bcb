// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

package detect

import "golang.org/x/sys/windows"

// platformDomain asks Windows for the DNS domain of the computer account.
func platformDomain() string {
	n := uint32(256)
	buf := make([]uint16, n)
	if err := windows.GetComputerNameEx(windows.ComputerNameDnsDomain, &buf[0], &n); err != nil {
		if err != windows.ERROR_MORE_DATA {
			return ""
		}
		buf = make([]uint16, n)
		if err := windows.GetComputerNameEx(windows.ComputerNameDnsDomain, &buf[0], &n); err != nil {
			return ""
		}
	}
	return windows.UTF16ToString(buf[:n])
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect discovers the directory domain this machine belongs to.
//
// When a directory-facing task is requested without --server, the domain of
// the machine is the default target. Sources are tried in this order:
//
//  1. USERDNSDOMAIN (set by a Windows domain logon)
//  2. the platform probe (GetComputerNameEx on Windows, uname domainname on Linux)
//  3. the "domain" directive of /etc/resolv.conf
//
// Search lists and host name suffixes are not used: they describe name
// resolution, and a host outside any domain often has both.
//
// # Usage
//
//	domain := detect.CurrentDomain()
//	if domain == "" {
//		// not joined to a domain
//	}
package detect

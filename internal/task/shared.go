// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package task

// Default collaborator limits.
const (
	DefaultMaxNodes             = 1000
	DefaultMaxDepth             = 30
	DefaultMaxUsersInHTMLReport = 100
	DefaultNullSessionLimit     = 5

	// Unlimited lifts the user enumeration limit of html reports.
	Unlimited = int(^uint(0) >> 1)
)

// Shared holds settings that apply to every collaborator of a run rather than
// to a single task. It is passed by reference to the engines at dispatch.
type Shared struct {
	Protocol Protocol

	// Graph report generation
	MaxNodes int
	MaxDepth int

	// Health check html report
	MaxUsersInHTMLReport int
	SkipNullSession      bool

	// Scanners
	NullSessionLimit int
	ScanMode         ScanMode
	ForeignDomain    string // inbound SID or FQDN enumerated by the foreign users scanner

	// Tracing switches, mirrored here so collaborators can inherit them.
	LogFile    bool
	LogConsole bool
}

// NewShared returns collaborator settings with their defaults.
func NewShared() *Shared {
	return &Shared{
		Protocol:             ProtocolADWSThenLDAP,
		MaxNodes:             DefaultMaxNodes,
		MaxDepth:             DefaultMaxDepth,
		MaxUsersInHTMLReport: DefaultMaxUsersInHTMLReport,
		NullSessionLimit:     DefaultNullSessionLimit,
		ScanMode:             ScanModeAll,
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package task

import (
	"fmt"
	"strings"
)

// =============================================================================
// CONNECTION PROTOCOL
// =============================================================================

// Protocol selects how collaborators query the directory.
type Protocol int

const (
	ProtocolADWSThenLDAP Protocol = iota
	ProtocolADWSOnly
	ProtocolLDAPOnly
	ProtocolLDAPThenADWS

	protocolCount
)

var protocolTokens = [...]struct {
	name        string
	description string
}{
	ProtocolADWSThenLDAP: {"ADWSThenLDAP", "default: ADWS then if failed, LDAP"},
	ProtocolADWSOnly:     {"ADWSOnly", "use only ADWS"},
	ProtocolLDAPOnly:     {"LDAPOnly", "use only LDAP"},
	ProtocolLDAPThenADWS: {"LDAPThenADWS", "LDAP then if failed, ADWS"},
}

// Fails to compile when a Protocol is added without a token.
var _ = [1]struct{}{}[len(protocolTokens)-int(protocolCount)]

// Protocols returns every protocol in declaration order.
func Protocols() []Protocol {
	out := make([]Protocol, 0, protocolCount)
	for p := Protocol(0); p < protocolCount; p++ {
		out = append(out, p)
	}
	return out
}

// ProtocolNames returns the accepted protocol tokens in declaration order.
func ProtocolNames() []string {
	names := make([]string, 0, protocolCount)
	for _, t := range protocolTokens {
		names = append(names, t.name)
	}
	return names
}

// ParseProtocol converts an exact protocol token.
func ParseProtocol(s string) (Protocol, error) {
	for i, t := range protocolTokens {
		if t.name == s {
			return Protocol(i), nil
		}
	}
	return 0, &EnumError{Kind: "protocol", Value: s, Accepted: ProtocolNames()}
}

func (p Protocol) String() string {
	if p < 0 || p >= protocolCount {
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
	return protocolTokens[p].name
}

// Description is the operator-facing explanation shown in menus.
func (p Protocol) Description() string {
	if p < 0 || p >= protocolCount {
		return ""
	}
	return protocolTokens[p].description
}

// DefaultPort is the port used when none is configured: 9389 for ADWS first,
// 389 for LDAP first.
func (p Protocol) DefaultPort() int {
	switch p {
	case ProtocolLDAPOnly, ProtocolLDAPThenADWS:
		return 389
	default:
		return 9389
	}
}

// =============================================================================
// EXPORT LEVEL
// =============================================================================

// ExportLevel is the amount of data written to the xml report.
type ExportLevel int

const (
	ExportLevelFull ExportLevel = iota
	ExportLevelNormal
	ExportLevelLight

	exportLevelCount
)

var exportLevelTokens = [...]string{
	ExportLevelFull:   "Full",
	ExportLevelNormal: "Normal",
	ExportLevelLight:  "Light",
}

// Fails to compile when an ExportLevel is added without a token.
var _ = [1]struct{}{}[len(exportLevelTokens)-int(exportLevelCount)]

// ExportLevelNames returns the accepted level tokens in declaration order.
func ExportLevelNames() []string {
	out := make([]string, len(exportLevelTokens))
	copy(out, exportLevelTokens[:])
	return out
}

// ParseExportLevel converts an exact level token.
func ParseExportLevel(s string) (ExportLevel, error) {
	for i, name := range exportLevelTokens {
		if name == s {
			return ExportLevel(i), nil
		}
	}
	return 0, &EnumError{Kind: "level", Value: s, Accepted: ExportLevelNames()}
}

func (l ExportLevel) String() string {
	if l < 0 || l >= exportLevelCount {
		return fmt.Sprintf("ExportLevel(%d)", int(l))
	}
	return exportLevelTokens[l]
}

// =============================================================================
// SCAN MODE
// =============================================================================

// ScanMode tells scanners whether to sweep every computer or a single one.
type ScanMode int

const (
	ScanModeAll ScanMode = iota
	ScanModeSingle
)

func (m ScanMode) String() string {
	if m == ScanModeSingle {
		return "single"
	}
	return "all"
}

// =============================================================================
// ERRORS
// =============================================================================

// EnumError reports a token outside a closed set.
type EnumError struct {
	Kind     string
	Value    string
	Accepted []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("unable to parse the %s [%s] to one of the predefined value (%s)",
		e.Kind, e.Value, strings.Join(e.Accepted, ","))
}

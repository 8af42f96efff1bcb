// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package task

import (
	"strings"
	"time"
)

// WildcardServer asks collaborators to cover every reachable domain.
const WildcardServer = "*"

// Credential is an explicit directory credential. A nil *Credential means
// integrated authentication.
type Credential struct {
	User     string
	Domain   string // optional NetBIOS or DNS domain of User
	Password string

	// PasswordSet distinguishes an empty password from one never supplied.
	PasswordSet bool
}

// ParseUser splits "DOMAIN\user" into its parts. A value without a backslash
// is a bare user name.
func ParseUser(value string) *Credential {
	if pos := strings.IndexByte(value, '\\'); pos >= 0 {
		return &Credential{Domain: value[:pos], User: value[pos+1:]}
	}
	return &Credential{User: value}
}

// String renders the credential without its password.
func (c *Credential) String() string {
	if c == nil {
		return "(integrated)"
	}
	if c.Domain == "" {
		return c.User
	}
	return c.Domain + `\` + c.User
}

// MailSettings configures report delivery by mail.
type MailSettings struct {
	SendXMLTo    string
	SendHTMLTo   string
	SendAllTo    string
	NotifyMail   string
	SMTPLogin    string
	SMTPPassword string
	SMTPTLS      bool
}

// WebSettings configures report upload to a WebDAV directory.
type WebSettings struct {
	Directory string
	User      string
	Password  string
}

// APISettings configures report upload through the reporting API.
type APISettings struct {
	Endpoint string // absolute URI
	Key      string
}

// Config is the per-run task configuration assembled by either resolution path.
type Config struct {
	Intents Intents

	// Connection
	Server     string
	Port       int // 0 selects the protocol default
	Credential *Credential

	// Health check and report parameters
	ExportLevel             ExportLevel
	EncryptReport           bool
	ExploreTerminalDomains  bool
	ExploreForestTrust      bool
	DomainsToNotExplore     []string
	AnalyzeReachableDomains bool
	CenterDomain            string
	FilterReportDate        time.Time
	FileOrDirectory         string
	NodesToInvestigate      []string

	API  APISettings
	Mail MailSettings
	Web  WebSettings

	// Scanner is the catalog name of the selected scanner.
	Scanner string

	LicenseSerial   string
	InteractiveMode bool
}

// NewConfig returns a configuration with the defaults of a fresh run.
func NewConfig() *Config {
	return &Config{
		ExportLevel: ExportLevelNormal,
	}
}

// WildcardTarget reports whether the server covers every domain ("*" only).
func (c *Config) WildcardTarget() bool {
	return c.Server == WildcardServer
}

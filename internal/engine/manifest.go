// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/adaudit/internal/task"
)

// ManifestVersion is bumped when a field changes meaning.
const ManifestVersion = 1

// Manifest is the job description handed to an external engine.
type Manifest struct {
	Version int    `yaml:"version"`
	Task    string `yaml:"task"`
	RunID   string `yaml:"run_id,omitempty"`

	Intents []string `yaml:"intents"`

	Connection ManifestConnection `yaml:"connection"`
	Report     ManifestReport     `yaml:"report"`
	Scanner    *ManifestScanner   `yaml:"scanner,omitempty"`
	Delivery   ManifestDelivery   `yaml:"delivery"`

	Interactive bool   `yaml:"interactive"`
	DemoReports bool   `yaml:"demo_reports,omitempty"`
	License     string `yaml:"license,omitempty"`

	Log ManifestLog `yaml:"log"`
}

// ManifestConnection is the directory connection.
type ManifestConnection struct {
	Server   string `yaml:"server,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Protocol string `yaml:"protocol"`
	User     string `yaml:"user,omitempty"`
	Domain   string `yaml:"domain,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// ManifestReport carries the report and exploration parameters.
type ManifestReport struct {
	Level                string   `yaml:"level"`
	Encrypt              bool     `yaml:"encrypt"`
	ExploreTrust         bool     `yaml:"explore_trust,omitempty"`
	ExploreForestTrust   bool     `yaml:"explore_forest_trust,omitempty"`
	ExploreException     []string `yaml:"explore_exception,omitempty"`
	Reachable            bool     `yaml:"reachable,omitempty"`
	CenterOn             string   `yaml:"center_on,omitempty"`
	FilterDate           string   `yaml:"filter_date,omitempty"`
	FileOrDirectory      string   `yaml:"file_or_directory,omitempty"`
	Nodes                []string `yaml:"nodes,omitempty"`
	MaxNodes             int      `yaml:"max_nodes"`
	MaxDepth             int      `yaml:"max_depth"`
	MaxUsersInHTMLReport int      `yaml:"max_users_in_html_report"`
	SkipNullSession      bool     `yaml:"skip_null_session,omitempty"`
}

// ManifestScanner carries the selected scanner and its settings.
type ManifestScanner struct {
	Name             string `yaml:"name"`
	Mode             string `yaml:"mode"`
	NullSessionLimit int    `yaml:"nslimit"`
	ForeignDomain    string `yaml:"foreign_domain,omitempty"`
}

// ManifestDelivery carries the API, mail and WebDAV settings.
type ManifestDelivery struct {
	APIEndpoint  string `yaml:"api_endpoint,omitempty"`
	APIKey       string `yaml:"api_key,omitempty"`
	SendXMLTo    string `yaml:"send_xml_to,omitempty"`
	SendHTMLTo   string `yaml:"send_html_to,omitempty"`
	SendAllTo    string `yaml:"send_all_to,omitempty"`
	NotifyMail   string `yaml:"notify_mail,omitempty"`
	SMTPLogin    string `yaml:"smtp_login,omitempty"`
	SMTPPassword string `yaml:"smtp_password,omitempty"`
	SMTPTLS      bool   `yaml:"smtp_tls,omitempty"`
	WebDirectory string `yaml:"web_directory,omitempty"`
	WebUser      string `yaml:"web_user,omitempty"`
	WebPassword  string `yaml:"web_password,omitempty"`
}

// ManifestLog mirrors the trace switches so the engine can inherit them.
type ManifestLog struct {
	File    bool `yaml:"file"`
	Console bool `yaml:"console"`
}

// NewManifest describes the entry point of job.
func NewManifest(entry task.Intent, job *Job) *Manifest {
	cfg, shared := job.Config, job.Shared

	m := &Manifest{
		Version:     ManifestVersion,
		Task:        entry.String(),
		RunID:       job.RunID,
		Interactive: cfg.InteractiveMode,
		DemoReports: job.DemoReports,
		License:     cfg.LicenseSerial,
		Connection: ManifestConnection{
			Server:   cfg.Server,
			Port:     cfg.Port,
			Protocol: shared.Protocol.String(),
		},
		Report: ManifestReport{
			Level:                cfg.ExportLevel.String(),
			Encrypt:              cfg.EncryptReport,
			ExploreTrust:         cfg.ExploreTerminalDomains,
			ExploreForestTrust:   cfg.ExploreForestTrust,
			ExploreException:     cfg.DomainsToNotExplore,
			Reachable:            cfg.AnalyzeReachableDomains,
			CenterOn:             cfg.CenterDomain,
			FileOrDirectory:      cfg.FileOrDirectory,
			Nodes:                cfg.NodesToInvestigate,
			MaxNodes:             shared.MaxNodes,
			MaxDepth:             shared.MaxDepth,
			MaxUsersInHTMLReport: shared.MaxUsersInHTMLReport,
			SkipNullSession:      shared.SkipNullSession,
		},
		Delivery: ManifestDelivery{
			APIEndpoint:  cfg.API.Endpoint,
			APIKey:       cfg.API.Key,
			SendXMLTo:    cfg.Mail.SendXMLTo,
			SendHTMLTo:   cfg.Mail.SendHTMLTo,
			SendAllTo:    cfg.Mail.SendAllTo,
			NotifyMail:   cfg.Mail.NotifyMail,
			SMTPLogin:    cfg.Mail.SMTPLogin,
			SMTPPassword: cfg.Mail.SMTPPassword,
			SMTPTLS:      cfg.Mail.SMTPTLS,
			WebDirectory: cfg.Web.Directory,
			WebUser:      cfg.Web.User,
			WebPassword:  cfg.Web.Password,
		},
		Log: ManifestLog{File: shared.LogFile, Console: shared.LogConsole},
	}
	for _, intent := range cfg.Intents.List() {
		m.Intents = append(m.Intents, intent.String())
	}
	if cred := cfg.Credential; cred != nil {
		m.Connection.User = cred.User
		m.Connection.Domain = cred.Domain
		m.Connection.Password = cred.Password
	}
	if !cfg.FilterReportDate.IsZero() {
		m.Report.FilterDate = cfg.FilterReportDate.Format(time.RFC3339)
	}
	if cfg.Scanner != "" {
		m.Scanner = &ManifestScanner{
			Name:             cfg.Scanner,
			Mode:             shared.ScanMode.String(),
			NullSessionLimit: shared.NullSessionLimit,
			ForeignDomain:    shared.ForeignDomain,
		}
	}
	return m
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job manifest: %w", err)
	}
	return data, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/task"
)

// =============================================================================
// MAIN AND ADVANCED MENUS
// =============================================================================

var mainChoices = []console.Choice{
	{Key: "healthcheck", Description: "Score the risk of a domain"},
	{Key: "graph", Description: "Analyze admin groups and delegations with diagrams"},
	{Key: "conso", Description: "Aggregate multiple reports into a single one"},
	{Key: "carto", Description: "Build a map of all interconnected domains"},
	{Key: "scanner", Description: "Perform specific security checks on workstations"},
	{Key: "advanced", Description: "Open the advanced menu"},
}

func (m *Machine) mainMenu() State {
	m.Config.Intents.Remove(
		task.IntentHealthCheck,
		task.IntentGraphConsolidation,
		task.IntentGraph,
		task.IntentCarto,
		task.IntentHealthCheckConsolidation,
		task.IntentScanner,
	)

	switch m.selectKey(console.Menu{
		Title:       "What do you want to do?",
		Information: "Using interactive mode.\r\nDo not forget that there are other command line switches like --help that you can use",
		Choices:     mainChoices,
	}) {
	case "":
		return Exit
	case "graph":
		m.Config.Intents.Add(task.IntentGraph)
		return AskServer
	case "carto":
		m.Config.Intents.Add(task.IntentCarto)
		return AskServer
	case "conso":
		m.Config.Intents.Add(task.IntentHealthCheckConsolidation, task.IntentGraphConsolidation)
		return Run
	case "scanner":
		m.Config.Intents.Add(task.IntentScanner)
		return ScannerMenu
	case "advanced":
		return AdvancedMenu
	default:
		m.Config.Intents.Add(task.IntentHealthCheck)
		return AskServer
	}
}

func (m *Machine) advancedMenu() State {
	m.Config.Intents.Remove(task.IntentGenerateKey, task.IntentReloadReport, task.IntentRegenerateReport)

	logState := "disabled"
	if m.Tracer != nil && m.Tracer.Enabled() {
		logState = "enabled"
	}
	choices := []console.Choice{
		{Key: "protocol", Description: "Change the protocol used to query the AD (LDAP, ADWS, ...)"},
		{Key: "generatekey", Description: "Generate RSA keys used to encrypt and decrypt reports"},
		{Key: "decrypt", Description: "Decrypt a xml report"},
		{Key: "regenerate", Description: "Regenerate the html report based on the xml report"},
		{Key: "log", Description: "Enable logging (log is " + logState + ")"},
	}

	switch m.selectKey(console.Menu{Title: "What do you want to do?", Choices: choices}) {
	case "":
		return Exit
	case "generatekey":
		m.Config.Intents.Add(task.IntentGenerateKey)
		return Run
	case "decrypt":
		m.Config.Intents.Add(task.IntentReloadReport)
		return AskFile
	case "regenerate":
		m.Config.Intents.Add(task.IntentRegenerateReport)
		return AskFile
	case "log":
		m.enableLog()
		return Exit
	default:
		return ProtocolMenu
	}
}

func (m *Machine) enableLog() {
	if m.Tracer == nil || m.Tracer.FileEnabled() {
		return
	}
	if err := m.Tracer.EnableFile(); err != nil {
		m.Tracer.Logger().Warn("unable to enable the trace file", "error", err)
		return
	}
	m.Tracer.Logger().Info("trace file enabled", "path", m.Tracer.FilePath())
	m.Shared.LogFile = true
}

func (m *Machine) protocolMenu() State {
	current := m.Shared.Protocol
	var choices []console.Choice
	def := 1
	for i, p := range task.Protocols() {
		choices = append(choices, console.Choice{Key: p.String(), Description: p.Description()})
		if p == current {
			def = i + 1
		}
	}

	key := m.selectKey(console.Menu{
		Title:       "What protocol do you want to use?",
		Information: "ADWS (Active Directory Web Service - tcp/9389) is the fastest protocol but is limited 5 sessions in parallele and a 30 minutes windows. LDAP is more stable but slower.\r\nCurrent protocol: [" + current.String() + "]",
		Choices:     choices,
		Default:     def,
	})
	if key != "" {
		if p, err := task.ParseProtocol(key); err == nil {
			m.Shared.Protocol = p
		}
	}
	return Exit
}

// =============================================================================
// SCANNERS
// =============================================================================

func (m *Machine) scannerMenu() State {
	var choices []console.Choice
	if m.Catalog != nil {
		for _, s := range m.Catalog.Scanners() {
			choices = append(choices, console.Choice{Key: s.Name(), Description: s.Description()})
		}
	}
	console.SortChoices(choices)

	key := m.selectKey(console.Menu{
		Title:       "Select a scanner",
		Information: "What scanner whould you like to run ?",
		Notice:      "WARNING: Checking a lot of workstations may raise security alerts.",
		Choices:     choices,
		Default:     1,
		Compact:     true,
	})
	if key == "" {
		return Exit
	}
	m.Config.Scanner = key
	return AskScannerParameter
}

func (m *Machine) askScannerParameter() State {
	if m.Catalog == nil {
		return Exit
	}
	s, ok := m.Catalog.Lookup(m.Config.Scanner)
	if !ok || !s.AskParameters(m.Console, m.Shared) {
		return Exit
	}
	return AskServer
}

// =============================================================================
// FREE-TEXT PROMPTS
// =============================================================================

func (m *Machine) askServer() State {
	def := m.Config.Server
	if def == "" {
		def = m.detectDomain()
	}
	info := "Please specify the domain or server to investigate:"
	if def != "" {
		info = "Please specify the domain or server to investigate (default:" + def + ")"
	}

	for {
		server, err := m.Console.AskString(console.Prompt{
			Title:       "Select a domain or server",
			Information: info,
		})
		if err != nil {
			return Exit
		}
		if server == "" {
			server = def
		}
		if server != "" {
			m.Config.Server = server
			break
		}
	}

	if m.Config.Intents.Has(task.IntentGraph) {
		return AskAdditionalNodes
	}
	return Run
}

func (m *Machine) askAdditionalNodes() State {
	nodes, err := m.Console.AskList(console.Prompt{
		Title:       "Indicate additional users",
		Information: "Please specify any additional users to investigate (sAMAccountName, display name) in addition to the classic admin groups. One entry per line. End by an empty line.",
	})
	if err != nil {
		return Exit
	}
	m.Config.NodesToInvestigate = nodes
	return Run
}

func (m *Machine) askFile() State {
	notice := ""
	for {
		file, err := m.Console.AskString(console.Prompt{
			Title:       "Select an existing report",
			Information: "Please specify the report to open.",
			Notice:      notice,
		})
		if err != nil {
			return Exit
		}
		if file != "" && m.fileExists(file) {
			m.Config.FileOrDirectory = file
			m.Config.EncryptReport = false
			return Run
		}
		notice = "The file " + file + " was not found"
	}
}

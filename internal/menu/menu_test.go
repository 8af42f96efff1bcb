// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

func newMachine(script *console.Script) *Machine {
	return &Machine{
		Config:  task.NewConfig(),
		Shared:  task.NewShared(),
		Console: script,
		Catalog: engine.DefaultCatalog(),
	}
}

func TestRun_ExitMainMenu(t *testing.T) {
	for _, answer := range []string{"0", console.Abort} {
		m := newMachine(console.NewScript(answer))
		assert.False(t, m.Run(context.Background()))
		assert.True(t, m.Config.Intents.Empty())
		assert.True(t, m.Config.InteractiveMode)
	}
}

func TestRun_HealthCheck(t *testing.T) {
	script := console.NewScript("healthcheck", "corp.example.org")
	m := newMachine(script)

	require.True(t, m.Run(context.Background()))
	assert.Equal(t, "corp.example.org", m.Config.Server)
	assert.Equal(t, task.Intents(task.IntentHealthCheck), m.Config.Intents)
	assert.Equal(t, []State{MainMenu, AskServer}, m.Visited)
	assert.Equal(t, []string{"What do you want to do?", "Select a domain or server"}, script.Titles())
	assert.Equal(t, "Please specify the domain or server to investigate:", script.Transcript[1].Information)
}

func TestRun_GraphAsksNodes(t *testing.T) {
	script := console.NewScript("2", "corp.example.org", "alice", "Bob Smith", "")
	m := newMachine(script)

	require.True(t, m.Run(context.Background()))
	assert.True(t, m.Config.Intents.Has(task.IntentGraph))
	assert.Equal(t, []string{"alice", "Bob Smith"}, m.Config.NodesToInvestigate)
	assert.Equal(t, "Indicate additional users", script.Transcript[2].Title)
	assert.Equal(t, 0, script.Remaining())
}

func TestRun_ServerDefaults(t *testing.T) {
	t.Run("detected domain", func(t *testing.T) {
		script := console.NewScript("1", "")
		m := newMachine(script)
		m.DetectDomain = func() string { return "corp.local" }

		require.True(t, m.Run(context.Background()))
		assert.Equal(t, "corp.local", m.Config.Server)
		assert.Equal(t, "Please specify the domain or server to investigate (default:corp.local)",
			script.Transcript[1].Information)
	})

	t.Run("current server wins", func(t *testing.T) {
		script := console.NewScript("1", "")
		m := newMachine(script)
		m.Config.Server = "dc1.corp.local"
		m.DetectDomain = func() string { return "corp.local" }

		require.True(t, m.Run(context.Background()))
		assert.Equal(t, "dc1.corp.local", m.Config.Server)
	})

	t.Run("loops until a server is given", func(t *testing.T) {
		script := console.NewScript("1", "", "", "srv")
		m := newMachine(script)

		require.True(t, m.Run(context.Background()))
		assert.Equal(t, "srv", m.Config.Server)
		assert.Len(t, script.Transcript, 4)
	})
}

func TestRun_BackIsIdempotent(t *testing.T) {
	script := console.NewScript("healthcheck", console.Abort, "carto", "corp.example.org")
	m := newMachine(script)

	require.True(t, m.Run(context.Background()))
	assert.Equal(t, task.Intents(task.IntentCarto), m.Config.Intents, "main menu resets the previous choice")
	require.Len(t, script.Transcript, 4)
	assert.Equal(t, script.Transcript[0], script.Transcript[2])
	assert.Equal(t, []State{MainMenu, AskServer, MainMenu, AskServer}, m.Visited)
}

func TestRun_Consolidation(t *testing.T) {
	m := newMachine(console.NewScript("conso"))
	m.Config.Intents.Add(task.IntentHealthCheck, task.IntentGenerateKey)

	require.True(t, m.Run(context.Background()))
	assert.True(t, m.Config.Intents.Has(task.IntentHealthCheckConsolidation))
	assert.True(t, m.Config.Intents.Has(task.IntentGraphConsolidation))
	assert.False(t, m.Config.Intents.Has(task.IntentHealthCheck))
	assert.True(t, m.Config.Intents.Has(task.IntentGenerateKey), "only the advanced menu resets key generation")
}

func TestRun_Scanner(t *testing.T) {
	script := console.NewScript("scanner", "smb", "one", "ws01.corp.local")
	m := newMachine(script)

	require.True(t, m.Run(context.Background()))
	assert.Equal(t, "smb", m.Config.Scanner)
	assert.True(t, m.Config.Intents.Has(task.IntentScanner))
	assert.Equal(t, task.ScanModeSingle, m.Shared.ScanMode)
	assert.Equal(t, "ws01.corp.local", m.Config.Server)

	screen := script.Transcript[1]
	assert.Equal(t, "Select a scanner", screen.Title)
	assert.Equal(t, "WARNING: Checking a lot of workstations may raise security alerts.", screen.Notice)
	require.Len(t, screen.Choices, 15)
	assert.Equal(t, "aclcheck", screen.Choices[0].Key)
}

func TestRun_ScannerBackOut(t *testing.T) {
	m := newMachine(console.NewScript("scanner", "smb", "0", "0", "0"))

	assert.False(t, m.Run(context.Background()))
	assert.Equal(t, []State{MainMenu, ScannerMenu, AskScannerParameter, ScannerMenu, MainMenu}, m.Visited)
}

func TestRun_Protocol(t *testing.T) {
	script := console.NewScript("advanced", "protocol", "LDAPOnly", "protocol", "", "0", "0")
	m := newMachine(script)

	assert.False(t, m.Run(context.Background()))
	assert.Equal(t, task.ProtocolLDAPOnly, m.Shared.Protocol)

	first, second := script.Transcript[2], script.Transcript[4]
	assert.Equal(t, 1, first.Default)
	assert.Contains(t, first.Information, "Current protocol: [ADWSThenLDAP]")
	assert.Equal(t, 3, second.Default, "current protocol is preselected")
	assert.Equal(t, task.ProtocolLDAPOnly, m.Shared.Protocol, "empty answer keeps the preselection")
}

func TestRun_AskFile(t *testing.T) {
	script := console.NewScript("advanced", "regenerate", "missing.xml", "report.xml")
	m := newMachine(script)
	m.Config.EncryptReport = true
	m.FileExists = func(path string) bool { return path == "report.xml" }

	require.True(t, m.Run(context.Background()))
	assert.Equal(t, task.Intents(task.IntentRegenerateReport), m.Config.Intents)
	assert.Equal(t, "report.xml", m.Config.FileOrDirectory)
	assert.False(t, m.Config.EncryptReport)

	require.Len(t, script.Transcript, 4)
	assert.Empty(t, script.Transcript[2].Notice)
	assert.Equal(t, "The file missing.xml was not found", script.Transcript[3].Notice)
}

func TestRun_Decrypt(t *testing.T) {
	m := newMachine(console.NewScript("advanced", "decrypt", "report.xml"))
	m.FileExists = func(string) bool { return true }

	require.True(t, m.Run(context.Background()))
	assert.Equal(t, task.Intents(task.IntentReloadReport), m.Config.Intents)
}

func TestRun_EnableLog(t *testing.T) {
	var out bytes.Buffer
	tracer := trace.New(&out, filepath.Join(t.TempDir(), "trace.log"))
	t.Cleanup(func() { _ = tracer.Close() })

	script := console.NewScript("advanced", "log", "advanced", "0", "0")
	m := newMachine(script)
	m.Tracer = tracer

	assert.False(t, m.Run(context.Background()))
	assert.True(t, tracer.FileEnabled())
	assert.True(t, m.Shared.LogFile)

	require.Len(t, script.Transcript, 5)
	assert.Equal(t, "healthcheck", script.Transcript[2].Choices[0].Key, "log goes back to the main menu")
	before, after := script.Transcript[1], script.Transcript[3]
	assert.Equal(t, "Enable logging (log is disabled)", before.Choices[4].Description)
	assert.Equal(t, "Enable logging (log is enabled)", after.Choices[4].Description)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "AskAdditionalNodes", AskAdditionalNodes.String())
	assert.Equal(t, "State(42)", State(42).String())
}

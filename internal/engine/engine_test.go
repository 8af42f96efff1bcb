// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/task"
)

func testJob() *Job {
	cfg := task.NewConfig()
	cfg.Intents.Add(task.IntentHealthCheck, task.IntentScanner)
	cfg.Server = "corp.example.org"
	cfg.Credential = &task.Credential{User: "auditor", Domain: "CORP", Password: "pw", PasswordSet: true}
	cfg.Scanner = "smb"
	cfg.FilterReportDate = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.NodesToInvestigate = []string{"cn=a,b", "alice"}

	shared := task.NewShared()
	shared.Protocol = task.ProtocolLDAPOnly
	shared.ScanMode = task.ScanModeSingle
	return &Job{Config: cfg, Shared: shared, RunID: "run-1"}
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	names := c.Names()

	assert.Len(t, names, 15)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, "aclcheck", names[0])
	assert.Equal(t, "zerologon", names[len(names)-1])

	s, ok := c.Lookup("foreignusers")
	require.True(t, ok)
	assert.NotEmpty(t, s.Description())

	_, ok = c.Lookup("SMB")
	assert.False(t, ok, "lookup is exact")

	for i, s := range c.Scanners() {
		assert.Equal(t, names[i], s.Name())
	}
}

func TestCatalog_RegisterDuplicate(t *testing.T) {
	c := NewCatalog(NewScanner("smb", "first"))
	err := c.Register(NewScanner("smb", "second"))
	assert.ErrorIs(t, err, ErrDuplicateScanner)

	s, _ := c.Lookup("smb")
	assert.Equal(t, "first", s.Description())
}

func TestAskScanMode(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   bool
		mode   task.ScanMode
	}{
		{name: "all", answer: "1", want: true, mode: task.ScanModeAll},
		{name: "one", answer: "one", want: true, mode: task.ScanModeSingle},
		{name: "back", answer: "0", want: false, mode: task.ScanModeAll},
		{name: "abort", answer: console.Abort, want: false, mode: task.ScanModeAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := task.NewShared()
			s := NewScanner("smb", "")
			got := s.AskParameters(console.NewScript(tt.answer), shared)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.mode, shared.ScanMode)
		})
	}
}

func TestForeignUsersAsksDomain(t *testing.T) {
	s, _ := DefaultCatalog().Lookup("foreignusers")
	script := console.NewScript("", "S-1-5-21-4005144719-3948538632-2546531719")
	shared := task.NewShared()

	require.True(t, s.AskParameters(script, shared))
	assert.Equal(t, "S-1-5-21-4005144719-3948538632-2546531719", shared.ForeignDomain)
	require.Len(t, script.Transcript, 2)
	assert.Equal(t, "The foreign domain cannot be empty", script.Transcript[1].Notice)

	assert.False(t, s.AskParameters(console.NewScript(console.Abort), task.NewShared()))
}

// =============================================================================
// LICENSE TESTS
// =============================================================================

func TestLicense(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	unlimited := &License{}
	assert.False(t, unlimited.Expired(now))
	assert.True(t, unlimited.AllowsServer("anything.example.org"))

	expired := &License{EndTime: now.Add(-time.Hour)}
	assert.True(t, expired.Expired(now))

	limited := &License{DomainLimitation: "*.example.org"}
	assert.True(t, limited.AllowsServer("corp.example.org"))
	assert.False(t, limited.AllowsServer("corp.example.net"))
	assert.False(t, limited.AllowsServer("*"))
}

// =============================================================================
// MANIFEST TESTS
// =============================================================================

func TestManifest(t *testing.T) {
	job := testJob()
	m := NewManifest(task.IntentScanner, job)

	data, err := m.Marshal()
	require.NoError(t, err)

	parsed := &Manifest{}
	require.NoError(t, yaml.Unmarshal(data, parsed))
	assert.Equal(t, m, parsed)
	assert.Equal(t, ManifestVersion, parsed.Version)

	assert.Equal(t, "scanner", parsed.Task)
	assert.Equal(t, []string{"healthcheck", "scanner"}, parsed.Intents)
	assert.Equal(t, "LDAPOnly", parsed.Connection.Protocol)
	assert.Equal(t, "CORP", parsed.Connection.Domain)
	assert.Equal(t, "2016-01-01T00:00:00Z", parsed.Report.FilterDate)
	require.NotNil(t, parsed.Scanner)
	assert.Equal(t, "single", parsed.Scanner.Mode)
	assert.Equal(t, 5, parsed.Scanner.NullSessionLimit)
}

// =============================================================================
// ENGINE TESTS
// =============================================================================

func TestPreview(t *testing.T) {
	var out bytes.Buffer
	p := NewPreview(&out)
	job := testJob()

	assert.True(t, p.Run(context.Background(), task.IntentScanner, job))
	p.Complete(context.Background(), job)

	text := out.String()
	assert.Contains(t, text, "Task scanner\n")
	assert.Contains(t, text, "server=corp.example.org")
	assert.Contains(t, text, `user=CORP\auditor`)
	assert.Contains(t, text, "scanner=smb mode=single")
	assert.NotContains(t, text, "pw")
	assert.Contains(t, text, "Task completed")
}

func writeEngineScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engine requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0700))
	return path
}

func TestCommand_Success(t *testing.T) {
	script := writeEngineScript(t, `
echo "task=$1 flag=$2"
grep -q "server: corp.example.org" "$3" || exit 3
echo "manifest ok" >&2
`)
	var stdout, stderr bytes.Buffer
	workDir := t.TempDir()
	c := NewCommand(script, workDir, &stdout, &stderr)

	ok := c.Run(context.Background(), task.IntentHealthCheck, testJob())
	require.True(t, ok, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "task=healthcheck flag=--job")
	assert.Contains(t, stderr.String(), "manifest ok")

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "manifest must be removed")
}

func TestCommand_Failure(t *testing.T) {
	script := writeEngineScript(t, "exit 2\n")
	var stderr bytes.Buffer
	c := NewCommand(script, t.TempDir(), nil, &stderr)

	assert.False(t, c.Run(context.Background(), task.IntentCarto, testJob()))
	assert.Contains(t, stderr.String(), "status 2")
}

func TestCommand_MissingExecutable(t *testing.T) {
	c := NewCommand(filepath.Join(t.TempDir(), "absent"), "", nil, nil)
	assert.False(t, c.Run(context.Background(), task.IntentCarto, testJob()))
}

func TestCommand_ManifestName(t *testing.T) {
	script := writeEngineScript(t, `echo "$3"`)
	var stdout bytes.Buffer
	workDir := t.TempDir()
	job := testJob()
	job.RunID = "0f3c9a"

	require.True(t, NewCommand(script, workDir, &stdout, nil).Run(context.Background(), task.IntentGraph, job))
	assert.Equal(t, filepath.Join(workDir, "adaudit-job-0f3c9a-graph.yaml")+"\n", stdout.String())
}

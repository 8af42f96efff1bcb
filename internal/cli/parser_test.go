// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

func TestMain(m *testing.M) {
	console.ForceColorsEnabled(false)
	os.Exit(m.Run())
}

func newEnv(t *testing.T, answers ...string) (*Env, *console.Script) {
	t.Helper()
	tracer := trace.New(&bytes.Buffer{}, filepath.Join(t.TempDir(), "trace.log"))
	t.Cleanup(func() { _ = tracer.Close() })

	script := console.NewScript(answers...)
	return &Env{
		Shared:  task.NewShared(),
		Tracer:  tracer,
		Catalog: engine.DefaultCatalog(),
		Console: script,
		Out:     &bytes.Buffer{},
	}, script
}

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse_Options(t *testing.T) {
	env, _ := newEnv(t)
	cfg := task.NewConfig()

	p, err := Parse([]string{
		"--healthcheck",
		"--server", "corp.local",
		"--port", "389",
		"--user", `CORP\alice`,
		"--password", "",
		"--protocol", "LDAPOnly",
		"--level", "Full",
		"--encrypt",
		"--explore-trust",
		"--explore-forest-trust",
		"--explore-exception", "a.local,b.local",
		"--reachable",
		"--api-endpoint", "https://api.example.org/",
		"--api-key", "k3y",
		"--sendxmlTo", "soc@example.org",
		"--smtptls",
		"--webdirectory", "https://dav.example.org/reports",
		"--max-nodes", "50",
		"--max-depth", "4",
		"--nslimit", "9",
		"--scmode-single",
		"--foreigndomain", "S-1-5-21-1",
		"--no-enum-limit",
		"--skip-null-session",
		"--node", `cn=a\,b,alice`,
		"--filter-date", "2016-01-01",
		"--center-on", "root.local",
	}, cfg, env)
	require.NoError(t, err)
	require.False(t, p.Help)

	assert.Equal(t, task.Intents(task.IntentHealthCheck), cfg.Intents)
	assert.Equal(t, "corp.local", cfg.Server)
	assert.Equal(t, 389, cfg.Port)
	require.NotNil(t, p.User)
	assert.Equal(t, "alice", p.User.User)
	assert.Equal(t, "CORP", p.User.Domain)
	assert.True(t, p.PasswordSet, "an empty password is still a password")
	assert.Nil(t, cfg.Credential, "credential is attached by Complete")

	assert.Equal(t, task.ExportLevelFull, cfg.ExportLevel)
	assert.True(t, cfg.EncryptReport)
	assert.True(t, cfg.ExploreTerminalDomains)
	assert.True(t, cfg.ExploreForestTrust)
	assert.Equal(t, []string{"a.local", "b.local"}, cfg.DomainsToNotExplore)
	assert.True(t, cfg.AnalyzeReachableDomains)
	assert.Equal(t, "https://api.example.org/", cfg.API.Endpoint)
	assert.Equal(t, "k3y", cfg.API.Key)
	assert.Equal(t, "soc@example.org", cfg.Mail.SendXMLTo)
	assert.True(t, cfg.Mail.SMTPTLS)
	assert.Equal(t, "https://dav.example.org/reports", cfg.Web.Directory)
	assert.Equal(t, []string{`cn=a\,b`, "alice"}, cfg.NodesToInvestigate)
	assert.Equal(t, time.Date(2016, 1, 1, 0, 0, 0, 0, time.Local), cfg.FilterReportDate)
	assert.Equal(t, "root.local", cfg.CenterDomain)

	assert.Equal(t, task.ProtocolLDAPOnly, env.Shared.Protocol)
	assert.Equal(t, 50, env.Shared.MaxNodes)
	assert.Equal(t, 4, env.Shared.MaxDepth)
	assert.Equal(t, 9, env.Shared.NullSessionLimit)
	assert.Equal(t, task.ScanModeSingle, env.Shared.ScanMode)
	assert.Equal(t, "S-1-5-21-1", env.Shared.ForeignDomain)
	assert.Equal(t, task.Unlimited, env.Shared.MaxUsersInHTMLReport)
	assert.True(t, env.Shared.SkipNullSession)
}

func TestParse_Intents(t *testing.T) {
	tests := []struct {
		tokens []string
		want   []task.Intent
		file   string
	}{
		{tokens: []string{"--carto", "--demo-reports"}, want: []task.Intent{task.IntentCarto, task.IntentDemoReports}},
		{tokens: []string{"--hc-conso", "--cg-conso"}, want: []task.Intent{task.IntentHealthCheckConsolidation, task.IntentGraphConsolidation}},
		{tokens: []string{"--graph", "--generate-key"}, want: []task.Intent{task.IntentGraph, task.IntentGenerateKey}},
		{tokens: []string{"--regen-report", "ad.xml"}, want: []task.Intent{task.IntentRegenerateReport}, file: "ad.xml"},
		{tokens: []string{"--slim-report", "ad.xml"}, want: []task.Intent{task.IntentReloadReport}, file: "ad.xml"},
		{tokens: []string{"--upload-all-reports"}, want: []task.Intent{task.IntentUploadAll}},
		{tokens: []string{"--scanner", "smb"}, want: []task.Intent{task.IntentScanner}},
	}
	for _, tt := range tests {
		t.Run(tt.tokens[0], func(t *testing.T) {
			env, _ := newEnv(t)
			cfg := task.NewConfig()
			_, err := Parse(tt.tokens, cfg, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Intents.List())
			assert.Equal(t, tt.file, cfg.FileOrDirectory)
		})
	}
}

func TestParse_MissingArgument(t *testing.T) {
	env, _ := newEnv(t)
	_, err := Parse([]string{"--healthcheck", "--server"}, task.NewConfig(), env)

	require.Error(t, err)
	assert.True(t, IsKind(err, MissingArgument))
	assert.Equal(t, "argument for --server is mandatory", err.Error())
}

func TestParse_MissingArgumentEveryOption(t *testing.T) {
	for _, opt := range Options() {
		if !opt.TakesValue() {
			continue
		}
		for _, token := range opt.Tokens() {
			t.Run(token, func(t *testing.T) {
				env, _ := newEnv(t)
				_, err := Parse([]string{"--carto", token}, task.NewConfig(), env)

				var re *ResolveError
				require.True(t, errors.As(err, &re), "got %v", err)
				assert.Equal(t, MissingArgument, re.Kind)
				assert.Equal(t, token, re.Option)
				assert.Equal(t, "argument for "+token+" is mandatory", re.Error())
				assert.False(t, re.ShowHelp())
			})
		}
	}
}

func TestParse_UnknownOption(t *testing.T) {
	env, _ := newEnv(t)
	cfg := task.NewConfig()
	_, err := Parse([]string{"--carto", "--healtcheck", "--graph"}, cfg, env)

	var re *ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, UnknownOption, re.Kind)
	assert.Equal(t, "--healthcheck", re.Suggestion)
	assert.True(t, re.ShowHelp())
	assert.Equal(t, "unknown argument: --healtcheck (did you mean --healthcheck?)", err.Error())
	assert.False(t, cfg.Intents.Has(task.IntentGraph), "parsing stops at the first error")
}

func TestParse_UnknownOptionPositions(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []string
		unknown    string
		suggestion string
		applied    task.Intents
	}{
		{name: "first", tokens: []string{"--bogus", "--carto"}, unknown: "--bogus"},
		{name: "middle", tokens: []string{"--carto", "--bogus", "--graph"}, unknown: "--bogus", applied: task.Intents(task.IntentCarto)},
		{name: "last", tokens: []string{"--carto", "--graph", "--bogus"}, unknown: "--bogus",
			applied: task.Intents(task.IntentCarto | task.IntentGraph)},
		{name: "value position", tokens: []string{"--server", "corp.local", "corp.local"}, unknown: "corp.local"},
		{name: "upper case", tokens: []string{"--HEALTHCHECK"}, unknown: "--HEALTHCHECK", suggestion: "--healthcheck"},
		{name: "mixed case", tokens: []string{"--carto", "--Graph"}, unknown: "--Graph", suggestion: "--graph",
			applied: task.Intents(task.IntentCarto)},
		{name: "alias case", tokens: []string{"--SendXmlTo", "a@b.c"}, unknown: "--SendXmlTo", suggestion: "--sendXmlTo"},
		{name: "single dash", tokens: []string{"-carto"}, unknown: "-carto", suggestion: "--carto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newEnv(t)
			cfg := task.NewConfig()
			_, err := Parse(tt.tokens, cfg, env)

			var re *ResolveError
			require.True(t, errors.As(err, &re), "got %v", err)
			assert.Equal(t, UnknownOption, re.Kind)
			assert.Equal(t, tt.unknown, re.Option)
			if tt.suggestion != "" {
				assert.Equal(t, tt.suggestion, re.Suggestion)
			}
			assert.True(t, re.ShowHelp())
			assert.Equal(t, tt.applied, cfg.Intents)
		})
	}
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		tokens   []string
		message  string
		accepted []string
	}{
		{tokens: []string{"--max-nodes", "many"}, message: "argument for --max-nodes is not a valid value (typically: 1000)"},
		{tokens: []string{"--max-depth", "deep"}, message: "argument for --max-depth is not a valid value (typically: 30)"},
		{tokens: []string{"--nslimit", "x"}, message: "argument for --nslimit is not a valid value (typically: 5)"},
		{tokens: []string{"--port", "ldap"}, message: "argument for --port is not a valid value (typically: 9389)"},
		{tokens: []string{"--filter-date", "soon"}, message: `Unable to parse the date "soon" - try entering 2016-01-01`},
		{tokens: []string{"--api-endpoint", "server"}, message: "unable to convert api-endpoint into an URI"},
		{
			tokens:   []string{"--level", "High"},
			message:  "Unable to parse the level [High] to one of the predefined value (Full,Normal,Light)",
			accepted: []string{"Full", "Normal", "Light"},
		},
		{
			tokens:   []string{"--protocol", "ldap"},
			message:  "Unable to parse the protocol [ldap] to one of the predefined value (ADWSThenLDAP,ADWSOnly,LDAPOnly,LDAPThenADWS)",
			accepted: task.ProtocolNames(),
		},
		{
			tokens:   []string{"--scanner", "bogus"},
			message:  "Unsupported scanner: bogus",
			accepted: engine.DefaultCatalog().Names(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.tokens[0], func(t *testing.T) {
			env, _ := newEnv(t)
			_, err := Parse(tt.tokens, task.NewConfig(), env)

			var re *ResolveError
			require.True(t, errors.As(err, &re), "got %v", err)
			assert.Equal(t, InvalidValue, re.Kind)
			assert.Equal(t, tt.tokens[0], re.Option)
			assert.Equal(t, tt.message, re.Error())
			assert.Equal(t, tt.accepted, re.Accepted)
			assert.False(t, re.ShowHelp())
		})
	}
}

func TestParse_ScannerWithoutCatalog(t *testing.T) {
	env, _ := newEnv(t)
	env.Catalog = nil

	_, err := Parse([]string{"--scanner", "smb"}, task.NewConfig(), env)
	var re *ResolveError
	require.True(t, errors.As(err, &re), "got %v", err)
	assert.Equal(t, InvalidValue, re.Kind)
	assert.Equal(t, "Unsupported scanner: smb", re.Error())
	assert.Empty(t, re.Accepted)
}

func TestParse_HelpStops(t *testing.T) {
	env, _ := newEnv(t)
	p, err := Parse([]string{"--help", "--bogus"}, task.NewConfig(), env)
	require.NoError(t, err)
	assert.True(t, p.Help)
}

func TestParse_NodesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.txt")
	require.NoError(t, os.WriteFile(path, []byte("alice\r\n\r\ncn=bob,ou=it\n  \ncarol"), 0600))

	env, _ := newEnv(t)
	cfg := task.NewConfig()
	_, err := Parse([]string{"--graph", "--nodes", path}, cfg, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "cn=bob,ou=it", "carol"}, cfg.NodesToInvestigate)

	_, err = Parse([]string{"--nodes", filepath.Join(t.TempDir(), "absent.txt")}, task.NewConfig(), env)
	assert.True(t, IsKind(err, InvalidValue))
}

func TestParse_Tracing(t *testing.T) {
	env, _ := newEnv(t)
	_, err := Parse([]string{"--log", "--log-console"}, task.NewConfig(), env)
	require.NoError(t, err)

	assert.True(t, env.Tracer.FileEnabled())
	assert.True(t, env.Shared.LogFile)
	assert.True(t, env.Shared.LogConsole)

	data, err := os.ReadFile(env.Tracer.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "trace file enabled")
}

func TestParse_License(t *testing.T) {
	env, _ := newEnv(t)
	cfg := task.NewConfig()
	_, err := Parse([]string{"--license", "ABC-123", "--debug-license", "--carto"}, cfg, env)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", cfg.LicenseSerial)
	assert.True(t, env.Shared.LogConsole)
}

// =============================================================================
// CONVERTER TESTS
// =============================================================================

func TestSplitNodes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "alice", want: []string{"alice"}},
		{in: "alice,bob", want: []string{"alice", "bob"}},
		{in: `cn=a\,b,c`, want: []string{`cn=a\,b`, "c"}},
		{in: `a\\,b`, want: []string{`a\\`, "b"}},
		{in: `a\\\,b`, want: []string{`a\\\,b`}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitNodes(tt.in), tt.in)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2016, 1, 2, 0, 0, 0, 0, time.Local)
	for _, in := range []string{"2016-01-02", "2016/01/02", "01/02/2016", "2 Jan 2016", "Jan 2, 2016"} {
		got, err := parseDate("--filter-date", in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
}

func TestSuggestOption(t *testing.T) {
	assert.Equal(t, "--healthcheck", SuggestOption("--HealthCheck"))
	assert.Equal(t, "--sendXmlTo", SuggestOption("--sendxmlto"))
	assert.Equal(t, "--graph", SuggestOption("--grpah"))
	assert.Equal(t, "", SuggestOption("--zz"))
	assert.Equal(t, "", SuggestOption("--completely-different"))
}

func TestOptionTable(t *testing.T) {
	seen := map[string]bool{}
	for _, opt := range Options() {
		require.NotNil(t, opt.Apply, opt.Name)
		for _, token := range opt.Tokens() {
			assert.False(t, seen[token], "duplicate token %s", token)
			seen[token] = true
		}
		if opt.Section != SectionHidden {
			assert.NotEmpty(t, opt.Usage, opt.Name)
		}
		for _, name := range opt.SeeAlso {
			ref, ok := LookupOption(name)
			require.True(t, ok, "%s refers to unknown %s", opt.Name, name)
			assert.NotEqual(t, opt.Section, ref.Section, "%s is already listed in its section", name)
		}
	}
	for _, i := range task.AllIntents() {
		_, ok := LookupOption(i.Flag())
		assert.True(t, ok, "intent %s has a switch", i)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/jeranaias/adaudit/internal/task"
)

// =============================================================================
// HELP SECTIONS
// =============================================================================

// Section groups options in the help text.
type Section int

const (
	SectionSwitches Section = iota
	SectionConnection
	SectionCarto
	SectionHealthCheck
	SectionGenerateKey
	SectionConsolidation
	SectionRegenerate
	SectionGraph
	SectionScanner
	SectionScannerOptions
	SectionUpload
	SectionHidden // parsed but not documented

	sectionCount
)

var sectionTitles = [...]string{
	SectionSwitches:       "switch:",
	SectionConnection:     "Common options when connecting to the AD",
	SectionCarto:          "",
	SectionHealthCheck:    "",
	SectionGenerateKey:    "",
	SectionConsolidation:  "",
	SectionRegenerate:     "",
	SectionGraph:          "",
	SectionScanner:        "",
	SectionScannerOptions: "  options for scanners:",
	SectionUpload:         "",
	SectionHidden:         "",
}

// Fails to compile when a Section is added without a title.
var _ = [1]struct{}{}[len(sectionTitles)-int(sectionCount)]

// Title is the heading printed above the section, possibly empty.
func (s Section) Title() string {
	if s < 0 || s >= sectionCount {
		return ""
	}
	return sectionTitles[s]
}

// =============================================================================
// OPTION TABLE
// =============================================================================

// Option is one entry of the option table. It drives both parsing and help.
type Option struct {
	Name    string
	Aliases []string

	// Arg names the value in help. An option takes a value iff Arg is set.
	Arg string

	Section Section
	Nested  bool   // indented under the first option of its section
	Usage   string // may span several lines

	// SeeAlso lists options of other sections repeated under this one in help.
	SeeAlso []string

	Apply func(p *Parsed, env *Env, value string) error
}

// TakesValue reports whether the option consumes the next token.
func (o *Option) TakesValue() bool {
	return o.Arg != ""
}

// Tokens returns the name followed by the aliases.
func (o *Option) Tokens() []string {
	return append([]string{o.Name}, o.Aliases...)
}

// Label is the left column of the help entry.
func (o *Option) Label() string {
	if o.Arg == "" {
		return o.Name
	}
	return o.Name + " " + o.Arg
}

// intent returns the Apply of a switch selecting intent.
func intent(i task.Intent) func(*Parsed, *Env, string) error {
	return func(p *Parsed, _ *Env, _ string) error {
		p.Config.Intents.Add(i)
		return nil
	}
}

// optionTable is static and ordered by help section.
var optionTable = []*Option{
	// switches
	{Name: "--help", Section: SectionSwitches, Usage: "display this message",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Help = true; return nil }},
	{Name: "--interactive", Section: SectionSwitches, Usage: "force the interactive mode",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Interactive = true; return nil }},
	{Name: "--log", Section: SectionSwitches, Usage: "generate a log file",
		Apply: func(p *Parsed, env *Env, _ string) error { env.enableLogFile(); return nil }},
	{Name: "--log-console", Section: SectionSwitches, Usage: "add log to the console",
		Apply: func(p *Parsed, env *Env, _ string) error { env.enableLogConsole(); return nil }},

	// connection
	{Name: "--server", Arg: "<server>", Section: SectionConnection,
		Usage: "use this server (default: current domain controller)\nthe special value * or *.forest do the healthcheck for all domains",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Server = v; return nil }},
	{Name: "--port", Arg: "<port>", Section: SectionConnection,
		Usage: "the port to use for ADWS or LDAP (default: 9389 or 389)",
		Apply: func(p *Parsed, _ *Env, v string) error {
			n, err := parseInt("--port", v, 9389)
			p.Config.Port = n
			return err
		}},
	{Name: "--user", Arg: "<user>", Section: SectionConnection,
		Usage: "use this user (default: integrated authentication)\nDOMAIN\\user selects the domain of the account",
		Apply: func(p *Parsed, _ *Env, v string) error { p.User = task.ParseUser(v); return nil }},
	{Name: "--password", Arg: "<pass>", Section: SectionConnection,
		Usage: "use this password (default: asked on a secure prompt)",
		Apply: func(p *Parsed, _ *Env, v string) error {
			p.Password, p.PasswordSet = v, true
			return nil
		}},
	{Name: "--protocol", Arg: "<proto>", Section: SectionConnection,
		Usage: "selection the protocol to use among LDAP or ADWS (fastest)\n" + strings.Join(task.ProtocolNames(), ", ") + " (default: " + task.ProtocolADWSThenLDAP.String() + ")",
		Apply: func(p *Parsed, env *Env, v string) error {
			proto, err := task.ParseProtocol(v)
			if err != nil {
				return enumError("--protocol", v, err)
			}
			env.Shared.Protocol = proto
			return nil
		}},

	// cartography
	{Name: "--carto", Section: SectionCarto, Usage: "perform a quick cartography with domains surrounding",
		Apply: intent(task.IntentCarto)},
	{Name: "--demo-reports", Section: SectionCarto, Nested: true,
		Usage: "generate demonstration reports (with --carto: from the map)",
		Apply: intent(task.IntentDemoReports)},

	// health check
	{Name: "--healthcheck", Section: SectionHealthCheck, Usage: "perform the healthcheck (step1)",
		Apply: intent(task.IntentHealthCheck)},
	{Name: "--api-endpoint", Arg: "<url>", Section: SectionHealthCheck, Nested: true,
		Usage: "upload report via api call eg: http://server",
		Apply: func(p *Parsed, _ *Env, v string) error {
			uri, err := parseAbsoluteURI("--api-endpoint", v)
			p.Config.API.Endpoint = uri
			return err
		}},
	{Name: "--api-key", Arg: "<key>", Section: SectionHealthCheck, Nested: true,
		Usage: "and using the api key as registered",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.API.Key = v; return nil }},
	{Name: "--explore-trust", Section: SectionHealthCheck, Nested: true,
		Usage: "on domains of a forest, after the healthcheck, do the hc on all trusted domains\nexcept domains of the forest and forest trusts",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Config.ExploreTerminalDomains = true; return nil }},
	{Name: "--explore-forest-trust", Section: SectionHealthCheck, Nested: true,
		Usage: "on root domain of a forest, after the healthcheck, do the hc on all forest trusts discovered\n--explore-trust and --explore-forest-trust can be run together",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Config.ExploreForestTrust = true; return nil }},
	{Name: "--explore-exception", Arg: "<domains>", Section: SectionHealthCheck, Nested: true,
		Usage: "comma separated values of domains that will not be explored automatically",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.DomainsToNotExplore = splitList(v); return nil }},
	{Name: "--encrypt", Section: SectionHealthCheck, Nested: true,
		Usage: "use an RSA key stored in the .config file to crypt the content of the xml report\nthe absence of this switch on an encrypted report will produce a decrypted report",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Config.EncryptReport = true; return nil }},
	{Name: "--level", Arg: "<level>", Section: SectionHealthCheck, Nested: true,
		Usage: "specify the amount of data found in the xml file\nlevel: " + strings.Join(task.ExportLevelNames(), ", ") + " (default: " + task.ExportLevelNormal.String() + ")",
		Apply: func(p *Parsed, _ *Env, v string) error {
			level, err := task.ParseExportLevel(v)
			if err != nil {
				return enumError("--level", v, err)
			}
			p.Config.ExportLevel = level
			return nil
		}},
	{Name: "--no-enum-limit", Section: SectionHealthCheck, Nested: true,
		Usage: "remove the max 100 users limitation in html report",
		Apply: func(_ *Parsed, env *Env, _ string) error {
			env.Shared.MaxUsersInHTMLReport = task.Unlimited
			return nil
		}},
	{Name: "--reachable", Section: SectionHealthCheck, Nested: true,
		Usage: "add reachable domains to the list of discovered domains",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Config.AnalyzeReachableDomains = true; return nil }},
	{Name: "--sendXmlTo", Aliases: []string{"--sendxmlTo"}, Arg: "<emails>", Section: SectionHealthCheck, Nested: true,
		Usage: "send xml reports to a mailbox (comma separated email)",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Mail.SendXMLTo = v; return nil }},
	{Name: "--sendHtmlTo", Aliases: []string{"--sendhtmlto"}, Arg: "<emails>", Section: SectionHealthCheck, Nested: true,
		Usage: "send html reports to a mailbox",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Mail.SendHTMLTo = v; return nil }},
	{Name: "--sendAllTo", Aliases: []string{"--sendallto"}, Arg: "<emails>", Section: SectionHealthCheck, Nested: true,
		Usage: "send xml and html reports to a mailbox",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Mail.SendAllTo = v; return nil }},
	{Name: "--notifyMail", Arg: "<emails>", Section: SectionHealthCheck, Nested: true,
		Usage: "add email notification when the mail is received",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Mail.NotifyMail = v; return nil }},
	{Name: "--smtplogin", Arg: "<user>", Section: SectionHealthCheck, Nested: true,
		Usage: "allow smtp credentials ...",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Mail.SMTPLogin = v; return nil }},
	{Name: "--smtppass", Arg: "<pass>", Section: SectionHealthCheck, Nested: true,
		Usage: "... to be entered on the command line",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Mail.SMTPPassword = v; return nil }},
	{Name: "--smtptls", Section: SectionHealthCheck, Nested: true,
		Usage: "enable TLS/SSL in SMTP if used on other port than 465 and 587",
		Apply: func(p *Parsed, _ *Env, _ string) error { p.Config.Mail.SMTPTLS = true; return nil }},
	{Name: "--skip-null-session", Section: SectionHealthCheck, Nested: true,
		Usage: "do not test for null session",
		Apply: func(_ *Parsed, env *Env, _ string) error { env.Shared.SkipNullSession = true; return nil }},
	{Name: "--webdirectory", Arg: "<dir>", Section: SectionHealthCheck, Nested: true,
		Usage: "upload the xml report to a webdav server",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Web.Directory = v; return nil }},
	{Name: "--webuser", Arg: "<user>", Section: SectionHealthCheck, Nested: true,
		Usage: "optional user and password",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Web.User = v; return nil }},
	{Name: "--webpassword", Arg: "<password>", Section: SectionHealthCheck, Nested: true,
		Usage: "password of --webuser",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.Web.Password = v; return nil }},

	// key generation
	{Name: "--generate-key", Section: SectionGenerateKey, Usage: "generate and display a new RSA key for encryption",
		Apply: intent(task.IntentGenerateKey)},

	// consolidation
	{Name: "--hc-conso", Section: SectionConsolidation, Usage: "consolidate multiple healthcheck xml reports (step2)",
		Apply: intent(task.IntentHealthCheckConsolidation)},
	{Name: "--cg-conso", Section: SectionConsolidation, Usage: "consolidate multiple graph xml reports",
		Apply: intent(task.IntentGraphConsolidation)},
	{Name: "--center-on", Arg: "<domain>", Section: SectionConsolidation, Nested: true,
		Usage: "center the simplified graph on this domain\ndefault is the domain with the most links",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.CenterDomain = v; return nil }},
	{Name: "--xmls", Arg: "<path>", Section: SectionConsolidation, Nested: true,
		Usage: "specify the path containing xml (default: current directory)",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.FileOrDirectory = v; return nil }},
	{Name: "--filter-date", Arg: "<date>", Section: SectionConsolidation, Nested: true,
		Usage: "filter report generated after the date.",
		Apply: func(p *Parsed, _ *Env, v string) error {
			date, err := parseDate("--filter-date", v)
			p.Config.FilterReportDate = date
			return err
		}},

	// regeneration
	{Name: "--regen-report", Arg: "<xml>", Section: SectionRegenerate,
		Usage: "regenerate a html report based on a xml report",
		Apply: func(p *Parsed, _ *Env, v string) error {
			p.Config.Intents.Add(task.IntentRegenerateReport)
			p.Config.FileOrDirectory = v
			return nil
		}},
	{Name: "--reload-report", Aliases: []string{"--slim-report"}, Arg: "<xml>", Section: SectionRegenerate,
		SeeAlso: []string{"--level", "--encrypt"},
		Usage: "regenerate a xml report based on a xml report\nany healthcheck switches (send email, ..) can be reused",
		Apply: func(p *Parsed, _ *Env, v string) error {
			p.Config.Intents.Add(task.IntentReloadReport)
			p.Config.FileOrDirectory = v
			return nil
		}},

	// graph
	{Name: "--graph", Section: SectionGraph, Usage: "perform the light compromise graph computation directly to the AD",
		SeeAlso: []string{"--encrypt"},
		Apply: intent(task.IntentGraph)},
	{Name: "--max-depth", Arg: "<depth>", Section: SectionGraph, Nested: true,
		Usage: "maximum number of relation to explore (default:30)",
		Apply: func(_ *Parsed, env *Env, v string) error {
			n, err := parseInt("--max-depth", v, task.DefaultMaxDepth)
			if err == nil {
				env.Shared.MaxDepth = n
			}
			return err
		}},
	{Name: "--max-nodes", Arg: "<nodes>", Section: SectionGraph, Nested: true,
		Usage: "maximum number of node to include (default:1000)",
		Apply: func(_ *Parsed, env *Env, v string) error {
			n, err := parseInt("--max-nodes", v, task.DefaultMaxNodes)
			if err == nil {
				env.Shared.MaxNodes = n
			}
			return err
		}},
	{Name: "--node", Arg: "<node>", Section: SectionGraph, Nested: true,
		Usage: "create a report based on a object\nexample: \"cn=name\" or \"name\"",
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.NodesToInvestigate = splitNodes(v); return nil }},
	{Name: "--nodes", Arg: "<file>", Section: SectionGraph, Nested: true,
		Usage: "create x report based on the nodes listed on a file",
		Apply: func(p *Parsed, _ *Env, v string) error {
			lines, err := readLines("--nodes", v)
			if err == nil {
				p.Config.NodesToInvestigate = lines
			}
			return err
		}},

	// scanners
	{Name: "--scanner", Arg: "<type>", Section: SectionScanner,
		Usage: "perform a scan on one of all computers of the domain (using --server)",
		Apply: func(p *Parsed, env *Env, v string) error {
			if env.Catalog == nil {
				return unsupportedScanner("--scanner", v, env)
			}
			if _, ok := env.Catalog.Lookup(v); !ok {
				return unsupportedScanner("--scanner", v, env)
			}
			p.Config.Scanner = v
			p.Config.Intents.Add(task.IntentScanner)
			return nil
		}},
	{Name: "--scmode-single", Section: SectionScannerOptions, Nested: true,
		Usage: "force scanner to check one single computer",
		Apply: func(_ *Parsed, env *Env, _ string) error { env.Shared.ScanMode = task.ScanModeSingle; return nil }},
	{Name: "--nslimit", Arg: "<number>", Section: SectionScannerOptions, Nested: true,
		Usage: "Limit the number of users to enumerate (default: 5)",
		Apply: func(_ *Parsed, env *Env, v string) error {
			n, err := parseInt("--nslimit", v, task.DefaultNullSessionLimit)
			if err == nil {
				env.Shared.NullSessionLimit = n
			}
			return err
		}},
	{Name: "--foreigndomain", Arg: "<sid>", Section: SectionScannerOptions, Nested: true,
		Usage: "foreign domain targeted using its FQDN or sids\nExample of SID: S-1-5-21-4005144719-3948538632-2546531719",
		Apply: func(_ *Parsed, env *Env, v string) error { env.Shared.ForeignDomain = v; return nil }},

	// upload
	{Name: "--upload-all-reports", Section: SectionUpload, SeeAlso: []string{"--api-endpoint", "--api-key"},
		Usage: "use the API to upload all reports in the current directory\nNote: do not forget to set --level Full to send all the information available",
		Apply: intent(task.IntentUploadAll)},

	// license handling, pre-scanned before resolution
	{Name: "--license", Arg: "<serial>", Section: SectionHidden,
		Apply: func(p *Parsed, _ *Env, v string) error { p.Config.LicenseSerial = v; return nil }},
	{Name: "--debug-license", Section: SectionHidden,
		Apply: func(_ *Parsed, env *Env, _ string) error { env.enableLogConsole(); return nil }},
}

// optionIndex maps every token to its option.
var optionIndex = func() map[string]*Option {
	index := make(map[string]*Option, len(optionTable))
	for _, opt := range optionTable {
		for _, token := range opt.Tokens() {
			index[token] = opt
		}
	}
	return index
}()

// Options returns the option table in help order.
func Options() []*Option {
	out := make([]*Option, len(optionTable))
	copy(out, optionTable)
	return out
}

// LookupOption returns the option for an exact token.
func LookupOption(token string) (*Option, bool) {
	opt, ok := optionIndex[token]
	return opt, ok
}

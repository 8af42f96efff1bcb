// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parser.go - Flag parsing for the adaudit command line.

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

// Env holds the collaborators that resolution reads or mutates besides the
// task configuration.
type Env struct {
	Shared  *task.Shared
	Tracer  *trace.Tracer
	Catalog *engine.Catalog
	Console console.Console
	Out     io.Writer

	// DetectDomain returns the DNS domain of this computer, or "".
	DetectDomain func() string

	// FileExists and DirExists default to os.Stat checks.
	FileExists func(path string) bool
	DirExists  func(path string) bool
}

func (env *Env) logger() *slog.Logger {
	if env.Tracer == nil {
		return trace.Discard()
	}
	return env.Tracer.Logger()
}

func (env *Env) enableLogFile() {
	if env.Tracer != nil {
		if err := env.Tracer.EnableFile(); err != nil {
			fmt.Fprintln(env.out(), console.RenderConditional(console.WarningStyle, "Warning: "+err.Error()))
			return
		}
		env.Tracer.Logger().Info("trace file enabled", "path", env.Tracer.FilePath())
	}
	env.Shared.LogFile = true
}

func (env *Env) enableLogConsole() {
	if env.Tracer != nil {
		env.Tracer.EnableConsole()
	}
	env.Shared.LogConsole = true
}

func (env *Env) out() io.Writer {
	if env.Out == nil {
		return io.Discard
	}
	return env.Out
}

// Parsed is the outcome of a flag parse before the completeness check.
type Parsed struct {
	Config *task.Config

	// User is set by --user; the password is resolved by Complete.
	User        *task.Credential
	Password    string
	PasswordSet bool

	// Interactive is set by --interactive: the menu runs after parsing.
	Interactive bool

	// Help is set by --help; parsing stops there.
	Help bool
}

// Parse walks the tokens left to right and applies each option to cfg and
// env. The first error stops the parse.
func Parse(tokens []string, cfg *task.Config, env *Env) (*Parsed, error) {
	p := &Parsed{Config: cfg}
	log := env.logger()

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		opt, ok := LookupOption(token)
		if !ok {
			return p, unknownOption(token)
		}

		var value string
		if opt.TakesValue() {
			if i+1 >= len(tokens) {
				return p, missingArgument(token)
			}
			i++
			value = tokens[i]
		}

		if err := opt.Apply(p, env, value); err != nil {
			return p, err
		}
		log.Debug("option applied", "option", opt.Name)

		if p.Help {
			return p, nil
		}
	}
	return p, nil
}

// unsupportedScanner reports a --scanner value missing from the catalog.
func unsupportedScanner(option, value string, env *Env) error {
	re := invalidValue(option, value, fmt.Sprintf("Unsupported scanner: %s", value))
	if env.Catalog != nil {
		re.Accepted = env.Catalog.Names()
	}
	return re
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// resolve.go - Turns command line tokens or menu navigation into a task
// configuration ready for dispatch.

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/adaudit/internal/menu"
	"github.com/jeranaias/adaudit/internal/task"
)

const (
	passwordPrompt = "Enter password: "

	noDomainReason = "This computer is not connected to a domain. The program couldn't guess the domain or server to connect."
	noDomainHint   = "Please run again this program with the flag --server <my.domain.com> or --server <mydomaincontroller.my.domain.com>"
)

// Resolve fills cfg from tokens. Without tokens the interactive menu runs.
// It returns ErrHelpRequested after --help, ErrAborted when the operator
// left the menu, or the first *ResolveError.
func Resolve(ctx context.Context, tokens []string, cfg *task.Config, env *Env) error {
	if len(tokens) == 0 {
		return Complete(ctx, &Parsed{Config: cfg, Interactive: true}, env)
	}

	p, err := Parse(tokens, cfg, env)
	if err != nil {
		return err
	}
	if p.Help {
		return ErrHelpRequested
	}
	return Complete(ctx, p, env)
}

// Complete runs the checks shared by both resolution paths, in order:
// something to do, pending interactive mode, server, password,
// consolidation directory, report file, scanner.
func Complete(ctx context.Context, p *Parsed, env *Env) error {
	cfg := p.Config
	log := env.logger()

	if cfg.Intents.Empty() && !p.Interactive {
		return incomplete("", "You must choose at least one value among "+intentFlags(), "")
	}
	log.Debug("things to do OK", "intents", cfg.Intents.String())

	if p.Interactive {
		m := &menu.Machine{
			Config:       cfg,
			Shared:       env.Shared,
			Console:      env.Console,
			Catalog:      env.Catalog,
			Tracer:       env.Tracer,
			DetectDomain: env.DetectDomain,
			FileExists:   env.FileExists,
		}
		if !m.Run(ctx) {
			return ErrAborted
		}
	}

	if cfg.Intents.NeedsDirectory() {
		if cfg.Server == "" && env.DetectDomain != nil {
			cfg.Server = env.DetectDomain()
		}
		if cfg.Server == "" {
			return incomplete("--server", noDomainReason, noDomainHint)
		}
		if p.User != nil {
			if err := resolveCredential(p, env); err != nil {
				return err
			}
		}
	}

	if cfg.Intents.NeedsConsolidationPath() {
		if cfg.FileOrDirectory == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get the current directory: %w", err)
			}
			cfg.FileOrDirectory = wd
		} else if !env.dirExists(cfg.FileOrDirectory) {
			return incomplete("--xmls", "The path specified by --xmls isn't a directory", "")
		}
	}

	if cfg.Intents.NeedsReportFile() && !env.fileExists(cfg.FileOrDirectory) {
		option := task.IntentRegenerateReport.Flag()
		if cfg.Intents.Has(task.IntentReloadReport) {
			option = task.IntentReloadReport.Flag()
		}
		return invalidValue(option, cfg.FileOrDirectory,
			fmt.Sprintf("The file %s was not found", cfg.FileOrDirectory))
	}

	if cfg.Intents.Has(task.IntentScanner) {
		if env.Catalog == nil {
			return unsupportedScanner("--scanner", cfg.Scanner, env)
		}
		if _, ok := env.Catalog.Lookup(cfg.Scanner); !ok {
			return unsupportedScanner("--scanner", cfg.Scanner, env)
		}
	}
	return nil
}

// resolveCredential prompts for a missing password and attaches the
// credential to the configuration.
func resolveCredential(p *Parsed, env *Env) error {
	cred := *p.User
	if p.PasswordSet {
		cred.Password = p.Password
	} else {
		if env.Console == nil {
			return missingArgument("--password")
		}
		password, err := env.Console.AskPassword(passwordPrompt)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAborted, err)
		}
		cred.Password = password
	}
	cred.PasswordSet = true
	p.Config.Credential = &cred
	return nil
}

func intentFlags() string {
	var flags []string
	for _, i := range task.AllIntents() {
		flags = append(flags, i.Flag())
	}
	return strings.Join(flags, " ")
}

func (env *Env) fileExists(path string) bool {
	if env.FileExists != nil {
		return env.FileExists(path)
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (env *Env) dirExists(path string) bool {
	if env.DirExists != nil {
		return env.DirExists(path)
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

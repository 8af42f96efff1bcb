// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli resolves an adaudit invocation into a task configuration and
// runs it.
//
// Tokens are parsed against a static option table that also renders the
// help text. An empty command line, or --interactive, hands over to the
// interactive menu. Both paths end with the same completeness check before
// the configuration reaches the dispatcher.
//
// # Key Types
//
//   - Option: one entry of the option table (name, aliases, argument, help)
//   - Parsed: the result of a flag parse before the completeness check
//   - ResolveError: the first failure, classified by ErrorKind
//   - App: one run, from license checks to dispatch
//
// # Usage
//
//	app := &cli.App{Engine: eng, Console: term, Out: os.Stdout}
//	if !app.Run(ctx, os.Args[1:]) {
//	    os.Exit(1)
//	}
package cli

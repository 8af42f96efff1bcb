// adaudit - command front end of an Active Directory security audit engine.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/adaudit/internal/cli"
	"github.com/jeranaias/adaudit/internal/config"
	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/detect"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/trace"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, console.Red(fmt.Sprintf("Error: %v", err)))
		return 1
	}
	license, err := cli.LicenseFromConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.Red(fmt.Sprintf("Error: %v", err)))
		return 1
	}

	tracer := trace.New(os.Stdout, cfg.Logging.TraceFile)
	defer tracer.Close()
	tracer.Logger().Debug("adaudit starting", "version", Version, "commit", GitCommit)

	term := console.NewTerminal(os.Stdout)
	defer term.Close()
	term.Header = cli.Banner(Version, license)

	var eng engine.Engine = engine.NewPreview(os.Stdout)
	if cfg.Engine.Command != "" {
		eng = engine.NewCommand(cfg.Engine.Command, cfg.Engine.WorkDir, os.Stdout, os.Stderr)
	}

	app := &cli.App{
		Defaults:     cfg,
		License:      license,
		Tracer:       tracer,
		Catalog:      engine.DefaultCatalog(),
		Engine:       eng,
		Console:      term,
		Out:          os.Stdout,
		DetectDomain: detect.CurrentDomain,
		Version:      Version,
		WaitForEnter: term.WaitForEnter,
	}
	if !app.Run(context.Background(), args) {
		return 1
	}
	return 0
}

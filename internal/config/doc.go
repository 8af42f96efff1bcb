// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the operator defaults of adaudit.
//
// Supports both TOML and YAML configuration formats, with defaults,
// environment variable overrides, and validation. Values in the file only
// seed a run: command-line options and menu choices override them.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ConnectionConfig: Default server, port and protocol
//   - EngineConfig: External engine command
//   - LicenseConfig: End of support, domain limitation and customer notice
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ADAUDIT_*)
//   - ~/.adaudit/config.toml
//   - ~/.adaudit/config.yaml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	taskCfg, shared := task.NewConfig(), task.NewShared()
//	if err := cfg.Apply(taskCfg, shared); err != nil {
//	    log.Fatal(err)
//	}
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"context"
	"os"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

// Machine drives the interactive mode. Handlers render one screen, mutate
// the configuration and return the next state.
type Machine struct {
	Config  *task.Config
	Shared  *task.Shared
	Console console.Console
	Catalog *engine.Catalog

	// Tracer is switched on by the advanced menu's log choice. May be nil.
	Tracer *trace.Tracer

	// DetectDomain proposes the default server. May be nil.
	DetectDomain func() string

	// FileExists defaults to an os.Stat check for a regular file.
	FileExists func(path string) bool

	// Visited lists the states entered, in order.
	Visited []State
}

// Run navigates from the main menu until Run is reached (true) or the
// operator exits the main menu (false).
func (m *Machine) Run(ctx context.Context) bool {
	log := trace.FromContext(ctx)
	m.Config.InteractiveMode = true

	state := MainMenu
	stack := []State{state}
	for len(stack) > 0 && stack[len(stack)-1] != Run {
		m.Visited = append(m.Visited, state)
		next := m.handle(state)
		log.Debug("menu transition", "from", state.String(), "to", next.String())

		if next == Exit {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				state = stack[len(stack)-1]
			}
			continue
		}
		stack = append(stack, next)
		state = next
	}
	return len(stack) > 0
}

func (m *Machine) handle(state State) State {
	switch state {
	case MainMenu:
		return m.mainMenu()
	case ScannerMenu:
		return m.scannerMenu()
	case AskScannerParameter:
		return m.askScannerParameter()
	case AskServer:
		return m.askServer()
	case AskAdditionalNodes:
		return m.askAdditionalNodes()
	case AdvancedMenu:
		return m.advancedMenu()
	case ProtocolMenu:
		return m.protocolMenu()
	case AskFile:
		return m.askFile()
	default:
		return Exit
	}
}

// selectKey shows a menu and returns the key of the selected choice, or ""
// for back.
func (m *Machine) selectKey(menu console.Menu) string {
	choice, err := m.Console.SelectMenu(menu)
	if err != nil || choice <= 0 || choice > len(menu.Choices) {
		return ""
	}
	return menu.Choices[choice-1].Key
}

func (m *Machine) fileExists(path string) bool {
	if m.FileExists != nil {
		return m.FileExists(path)
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (m *Machine) detectDomain() string {
	if m.DetectDomain == nil {
		return ""
	}
	return m.DetectDomain()
}

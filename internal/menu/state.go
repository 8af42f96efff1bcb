// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import "fmt"

// State is one screen of the interactive mode.
type State int

const (
	// Exit pops the current screen: back, or leave from the main menu.
	Exit State = iota
	MainMenu
	ScannerMenu
	AskServer
	// Run ends navigation with a complete configuration.
	Run
	AdvancedMenu
	AskAdditionalNodes
	AskScannerParameter
	ProtocolMenu
	AskFile

	stateCount
)

var stateNames = [...]string{
	Exit:                "Exit",
	MainMenu:            "MainMenu",
	ScannerMenu:         "ScannerMenu",
	AskServer:           "AskServer",
	Run:                 "Run",
	AdvancedMenu:        "AdvancedMenu",
	AskAdditionalNodes:  "AskAdditionalNodes",
	AskScannerParameter: "AskScannerParameter",
	ProtocolMenu:        "ProtocolMenu",
	AskFile:             "AskFile",
}

// Fails to compile when a State is added without a name.
var _ = [1]struct{}{}[len(stateNames)-int(stateCount)]

func (s State) String() string {
	if s < 0 || s >= stateCount {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"errors"
	"sort"
)

// ErrAborted is returned when the operator interrupts a prompt (Ctrl-C) or
// input ends. Menus treat it as "back".
var ErrAborted = errors.New("prompt aborted")

// Choice is one selectable entry of a menu.
type Choice struct {
	Key         string
	Description string
}

// SortChoices orders choices by key. The order of equal keys is kept.
func SortChoices(choices []Choice) {
	sort.SliceStable(choices, func(i, j int) bool {
		return choices[i].Key < choices[j].Key
	})
}

// Menu is a question answered by a 1-based index into Choices. Index 0 is
// reserved for back.
type Menu struct {
	Title       string
	Information string
	Notice      string
	Choices     []Choice

	// Default is the choice selected by an empty answer; 0 selects the first.
	Default int

	// Compact lays the choices out in columns.
	Compact bool
}

// Prompt is a free-text question.
type Prompt struct {
	Title       string
	Information string
	Notice      string
}

// Console is everything the resolvers need from the operator.
type Console interface {
	// SelectMenu returns the selected 1-based index, or 0 for back.
	SelectMenu(m Menu) (int, error)

	// AskString reads one line.
	AskString(p Prompt) (string, error)

	// AskList reads lines until an empty one.
	AskList(p Prompt) ([]string, error)

	// AskPassword reads a secret without echoing it.
	AskPassword(prompt string) (string, error)
}

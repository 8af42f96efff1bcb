// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package menu implements the interactive mode as an explicit state stack.
//
// Every handler returns the next State. A state other than Exit is pushed;
// Exit pops the stack and the new top is shown again, which is how "back"
// works. Navigation succeeds when Run is on top and fails when the main
// menu is left.
//
// Menus select by 1-based index, 0 being back. An interrupted prompt
// (Ctrl-C, end of input) also goes back.
//
// # Usage
//
//	m := &menu.Machine{Config: cfg, Shared: shared, Console: term, Catalog: engine.DefaultCatalog()}
//	if !m.Run(ctx) {
//		return false
//	}
package menu

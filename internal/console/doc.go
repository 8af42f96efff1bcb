// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console abstracts operator input and output.
//
// The menu state machine and the flag resolver only talk to the Console
// interface. Terminal is the real implementation: it uses liner for line
// editing when stdin and stdout are terminals, plain line reads when input
// is piped, and x/term for masked password entry. Script answers from a
// fixed list and records every question, so navigation can be tested
// without a terminal.
//
// # Key Types
//
//   - Console: SelectMenu, AskString, AskList and AskPassword
//   - Menu, Prompt, Choice: question descriptions
//   - Terminal: interactive implementation
//   - Script: scripted implementation with a transcript
//
// # Usage
//
//	term := console.NewTerminal(os.Stdout)
//	defer term.Close()
//	choice, err := term.SelectMenu(console.Menu{
//	    Title:   "What do you want to do?",
//	    Choices: []console.Choice{{Key: "healthcheck", Description: "Score the risk of a domain"}},
//	})
//
// An interrupted prompt returns ErrAborted; index 0 means back.
package console

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Help text rendered from the option table.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/util"
)

// helpColumn is the display column of the ": " separator.
const helpColumn = 22

// RenderHelp writes the help text. Hidden options are skipped; the scanner
// catalog is listed under --scanner.
func RenderHelp(w io.Writer, catalog *engine.Catalog) {
	current := Section(-1)
	for _, opt := range optionTable {
		if opt.Section == SectionHidden {
			continue
		}
		if opt.Section != current {
			if current == SectionScanner {
				renderScanners(w, catalog)
			}
			// Scanner options follow the catalog without a blank line.
			if current >= 0 && opt.Section != SectionScannerOptions {
				fmt.Fprintln(w)
			}
			if title := opt.Section.Title(); title != "" {
				fmt.Fprintln(w, title)
			}
			current = opt.Section
		}
		renderOption(w, opt)
		for _, name := range opt.SeeAlso {
			if ref, ok := LookupOption(name); ok {
				renderOption(w, ref)
			}
		}
	}
	fmt.Fprintln(w)
}

func renderOption(w io.Writer, opt *Option) {
	indent := "  "
	if opt.Nested {
		indent = "    "
	}
	label := indent + opt.Label()
	if util.StringWidth(label) < helpColumn {
		label = util.PadRight(label, helpColumn)
	} else {
		label += " "
	}

	lines := strings.Split(opt.Usage, "\n")
	fmt.Fprintf(w, "%s: %s\n", label, lines[0])
	continuation := strings.Repeat(" ", helpColumn+2)
	for _, line := range lines[1:] {
		fmt.Fprintln(w, continuation+line)
	}
}

func renderScanners(w io.Writer, catalog *engine.Catalog) {
	if catalog == nil {
		return
	}
	for _, s := range catalog.Scanners() {
		fmt.Fprintln(w, console.RenderConditional(console.NameStyle, s.Name()))
		fmt.Fprintln(w, s.Description())
	}
}

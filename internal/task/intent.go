// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package task

import (
	"math/bits"
	"strings"
)

// Intent selects one external task the dispatcher may invoke.
type Intent uint16

const (
	IntentHealthCheck Intent = 1 << iota
	IntentHealthCheckConsolidation
	IntentGraph // live compromise graph ("advanced live")
	IntentGraphConsolidation
	IntentCarto
	IntentScanner
	IntentGenerateKey
	IntentRegenerateReport
	IntentReloadReport
	IntentDemoReports
	IntentUploadAll
)

// allIntents lists every intent in declaration order.
var allIntents = [...]Intent{
	IntentHealthCheck,
	IntentHealthCheckConsolidation,
	IntentGraph,
	IntentGraphConsolidation,
	IntentCarto,
	IntentScanner,
	IntentGenerateKey,
	IntentRegenerateReport,
	IntentReloadReport,
	IntentDemoReports,
	IntentUploadAll,
}

// intentNames are the command-line switches selecting each intent,
// indexed by bit position.
var intentNames = [...]string{
	"healthcheck",
	"hc-conso",
	"graph",
	"cg-conso",
	"carto",
	"scanner",
	"generate-key",
	"regen-report",
	"reload-report",
	"demo-reports",
	"upload-all-reports",
}

// Fails to compile when an intent is added without a switch name.
var _ = [1]struct{}{}[len(intentNames)-len(allIntents)]

// AllIntents returns every intent in declaration order.
func AllIntents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents[:])
	return out
}

// String returns the switch name of a single intent.
func (i Intent) String() string {
	if i == 0 || i&(i-1) != 0 {
		return "intent(invalid)"
	}
	idx := bits.TrailingZeros16(uint16(i))
	if idx >= len(intentNames) {
		return "intent(invalid)"
	}
	return intentNames[idx]
}

// Flag returns the switch as typed on the command line.
func (i Intent) Flag() string {
	return "--" + i.String()
}

// directoryIntents talk to a directory service and need a server.
const directoryIntents = Intents(IntentHealthCheck | IntentGraph | IntentScanner)

// Intents is a set of intents.
type Intents uint16

// Add marks the given intents as selected.
func (s *Intents) Add(intents ...Intent) {
	for _, i := range intents {
		*s |= Intents(i)
	}
}

// Remove clears the given intents.
func (s *Intents) Remove(intents ...Intent) {
	for _, i := range intents {
		*s &^= Intents(i)
	}
}

// Has reports whether the intent is selected.
func (s Intents) Has(i Intent) bool {
	return s&Intents(i) != 0
}

// Empty reports whether no intent is selected.
func (s Intents) Empty() bool {
	return s == 0
}

// NeedsDirectory reports whether any selected intent queries a directory service.
func (s Intents) NeedsDirectory() bool {
	return s&directoryIntents != 0
}

// NeedsConsolidationPath reports whether a report directory is consumed.
func (s Intents) NeedsConsolidationPath() bool {
	return s.Has(IntentHealthCheckConsolidation) || s.Has(IntentGraphConsolidation)
}

// NeedsReportFile reports whether a single existing report file is consumed.
func (s Intents) NeedsReportFile() bool {
	return s.Has(IntentRegenerateReport) || s.Has(IntentReloadReport)
}

// List returns the selected intents in declaration order.
func (s Intents) List() []Intent {
	var out []Intent
	for _, i := range allIntents {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (s Intents) String() string {
	list := s.List()
	if len(list) == 0 {
		return "none"
	}
	names := make([]string, len(list))
	for i, intent := range list {
		names[i] = intent.String()
	}
	return strings.Join(names, ",")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/task"
)

// =============================================================================
// SCANNER
// =============================================================================

// Scanner describes one workstation check offered by the engine.
type Scanner interface {
	Name() string
	Description() string

	// AskParameters collects the scanner settings in interactive mode.
	// It returns false when the operator backs out.
	AskParameters(c console.Console, shared *task.Shared) bool
}

// builtinScanner is a catalog entry whose parameter prompt is a function.
type builtinScanner struct {
	name        string
	description string
	ask         func(c console.Console, shared *task.Shared) bool
}

func (s *builtinScanner) Name() string        { return s.name }
func (s *builtinScanner) Description() string { return s.description }

func (s *builtinScanner) AskParameters(c console.Console, shared *task.Shared) bool {
	if s.ask == nil {
		return AskScanMode(c, shared)
	}
	return s.ask(c, shared)
}

// NewScanner returns a scanner that asks for the scan mode only.
func NewScanner(name, description string) Scanner {
	return &builtinScanner{name: name, description: description}
}

// AskScanMode asks whether to scan the whole domain or a single computer.
func AskScanMode(c console.Console, shared *task.Shared) bool {
	choice, err := c.SelectMenu(console.Menu{
		Title:       "Select the scanning mode",
		Information: "This scanner can collect all the active computers in a domain and scan them one by one automatically. Or scan only one computer",
		Choices: []console.Choice{
			{Key: "all", Description: "This is a domain. Scan all computers."},
			{Key: "one", Description: "This is a computer. Scan only this computer."},
		},
	})
	if err != nil || choice == 0 {
		return false
	}
	if choice == 2 {
		shared.ScanMode = task.ScanModeSingle
	} else {
		shared.ScanMode = task.ScanModeAll
	}
	return true
}

// askForeignDomain asks for the domain enumerated through the trusts.
func askForeignDomain(c console.Console, shared *task.Shared) bool {
	notice := ""
	for {
		value, err := c.AskString(console.Prompt{
			Title:       "Select the foreign domain",
			Information: "Please specify the foreign domain to enumerate, using its FQDN or its SID.\nExample of SID: S-1-5-21-4005144719-3948538632-2546531719",
			Notice:      notice,
		})
		if err != nil {
			return false
		}
		if value != "" {
			shared.ForeignDomain = value
			return true
		}
		notice = "The foreign domain cannot be empty"
	}
}

// =============================================================================
// CATALOG
// =============================================================================

// ErrDuplicateScanner is returned when a name is registered twice.
var ErrDuplicateScanner = errors.New("scanner already registered")

// Catalog is the set of scanners known at run time.
type Catalog struct {
	mu       sync.RWMutex
	scanners map[string]Scanner
}

// NewCatalog creates a catalog holding scanners.
func NewCatalog(scanners ...Scanner) *Catalog {
	c := &Catalog{scanners: make(map[string]Scanner)}
	for _, s := range scanners {
		// Builtin names are unique.
		_ = c.Register(s)
	}
	return c
}

// Register adds a scanner under its name.
func (c *Catalog) Register(s Scanner) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.scanners[s.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateScanner, s.Name())
	}
	c.scanners[s.Name()] = s
	return nil
}

// Lookup returns the scanner registered under name. Names are exact.
func (c *Catalog) Lookup(name string) (Scanner, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.scanners[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.scanners))
	for name := range c.scanners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scanners returns the registered scanners sorted by name.
func (c *Catalog) Scanners() []Scanner {
	names := c.Names()
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]Scanner, len(names))
	for i, name := range names {
		list[i] = c.scanners[name]
	}
	return list
}

// DefaultCatalog returns the scanners shipped with the engine.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		NewScanner("aclcheck", "Check authorization related to users or groups. Default to everyone, authenticated users and domain users"),
		NewScanner("antivirus", "Check for computers without known antivirus installed. It is used to detect unprotected computers but may also report computers with unknown antivirus."),
		NewScanner("computerversion", "Get the version of a computer. Can be used to determine if obsolete operating systems are still present."),
		&builtinScanner{
			name:        "foreignusers",
			description: "Use trusts to enumerate users located in domain denied such as bastion or domains too far away.",
			ask:         askForeignDomain,
		},
		NewScanner("laps_bitlocker", "Check on the AD if LAPS and/or BitLocker has been enabled for all computers on the domain."),
		NewScanner("localadmin", "Enumerate the local administrators of a computer."),
		NewScanner("nullsession", "Check if null sessions are enabled and provide example(s)."),
		NewScanner("nullsession-trust", "Dump the trusts of a domain via null session if possible"),
		NewScanner("oxidbindings", "List all IP of the computer and the interface name via the Oxid Resolver (part of DCOM). No authentication. Used to find other networks such as the one used for administration."),
		NewScanner("remote", "Check if a remote desktop solution is installed on the computer."),
		NewScanner("share", "List all shares published on a computer and determine if the share can be accessed by anyone"),
		NewScanner("smb", "Scan a computer and determine the smb version available. Also if SMB signing is active."),
		NewScanner("spooler", "Check if the spooler service is remotely active. The spooler can be abused to get computer tokens when unconstrained delegations are exploited."),
		NewScanner("startup", "Get the last startup date of a computer. Can be used to determine if latest patches have been applied."),
		NewScanner("zerologon", "Test for the ZeroLogon vulnerability. Important: the tested DC is left with an empty password which is not a problem in a default configuration."),
	)
}

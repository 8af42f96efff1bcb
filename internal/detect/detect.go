// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

// =============================================================================
// PROBES
// =============================================================================

// Probe returns a candidate domain, or "" when its source knows none.
type Probe func() string

// resolvConfPath is a variable so tests can point it elsewhere.
var resolvConfPath = "/etc/resolv.conf"

// DefaultProbes returns the probes in precedence order.
func DefaultProbes() []Probe {
	return []Probe{
		envProbe,
		platformDomain,
		resolvConfProbe,
	}
}

func envProbe() string {
	return os.Getenv("USERDNSDOMAIN")
}

func resolvConfProbe() string {
	f, err := os.Open(resolvConfPath)
	if err != nil {
		return ""
	}
	defer f.Close()
	return domainFromResolvConf(f)
}

// =============================================================================
// PARSERS
// =============================================================================

// domainFromResolvConf reads the "domain" directive. Search lists describe
// name resolution, not membership, and are ignored.
func domainFromResolvConf(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") || strings.HasPrefix(fields[0], ";") {
			continue
		}
		if fields[0] == "domain" {
			return normalize(fields[1])
		}
	}
	return ""
}

// normalize drops placeholders some systems report for "no domain".
func normalize(domain string) string {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	switch strings.ToLower(domain) {
	case "", "(none)", "localdomain", "local", "lan", "home":
		return ""
	}
	return domain
}

// =============================================================================
// DETECTION
// =============================================================================

// FirstDomain returns the result of the first probe that knows a domain.
func FirstDomain(probes []Probe) string {
	for _, probe := range probes {
		if domain := normalize(probe()); domain != "" {
			return domain
		}
	}
	return ""
}

var (
	domainCache     string
	domainCacheDone bool
	domainCacheMu   sync.Mutex
)

// CurrentDomain returns the domain this machine belongs to, or "" when it is
// not joined to one. The result is computed once per process.
func CurrentDomain() string {
	domainCacheMu.Lock()
	defer domainCacheMu.Unlock()
	if !domainCacheDone {
		domainCache = FirstDomain(DefaultProbes())
		domainCacheDone = true
	}
	return domainCache
}

// ClearDomainCache forces the next CurrentDomain call to probe again.
func ClearDomainCache() {
	domainCacheMu.Lock()
	defer domainCacheMu.Unlock()
	domainCache = ""
	domainCacheDone = false
}

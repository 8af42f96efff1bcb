// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"time"

	"github.com/jeranaias/adaudit/internal/util"
)

// License holds the terms checked around resolution.
type License struct {
	Serial string

	// EndTime is the end of support; the zero time means unlimited.
	EndTime time.Time

	// DomainLimitation is a wildcard pattern the server must match.
	DomainLimitation string

	// CustomerNotice is printed before dispatch.
	CustomerNotice string
}

// Expired reports whether support ended before now.
func (l *License) Expired(now time.Time) bool {
	return !l.EndTime.IsZero() && l.EndTime.Before(now)
}

// AllowsServer reports whether server is covered by the domain limitation.
func (l *License) AllowsServer(server string) bool {
	if l.DomainLimitation == "" {
		return true
	}
	return util.MatchWildcard(l.DomainLimitation, server)
}

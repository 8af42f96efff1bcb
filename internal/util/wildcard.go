// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"path"
	"strings"
)

// literal escapes the path.Match metacharacters other than "*" and "?".
var literal = strings.NewReplacer(`\`, `\\`, `[`, `\[`)

// MatchWildcard reports whether value matches pattern, where "*" matches any
// run of characters and "?" exactly one. Matching ignores case, as domain
// names do.
func MatchWildcard(pattern, value string) bool {
	ok, err := path.Match(literal.Replace(strings.ToLower(pattern)), strings.ToLower(value))
	return err == nil && ok
}

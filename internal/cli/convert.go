// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/adaudit/internal/task"
)

// =============================================================================
// VALUE CONVERTERS
// =============================================================================

// parseInt converts an integer option value. typical is quoted in the error.
func parseInt(option, value string, typical int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		re := invalidValue(option, value,
			fmt.Sprintf("argument for %s is not a valid value (typically: %d)", option, typical))
		re.Err = err
		return 0, re
	}
	return n, nil
}

// enumError turns a closed-set parse failure into an InvalidValue error
// carrying the accepted tokens.
func enumError(option, value string, err error) error {
	re := invalidValue(option, value, "")
	var enumErr *task.EnumError
	if errors.As(err, &enumErr) {
		re.Accepted = enumErr.Accepted
		re.Reason = fmt.Sprintf("Unable to parse the %s [%s] to one of the predefined value (%s)",
			enumErr.Kind, value, strings.Join(enumErr.Accepted, ","))
	}
	re.Err = err
	return re
}

// dateLayouts are tried in order by parseDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// parseDate accepts the common date layouts, in local time unless the value
// carries a zone.
func parseDate(option, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalidValue(option, value,
		fmt.Sprintf("Unable to parse the date \"%s\" - try entering 2016-01-01", value))
}

// parseAbsoluteURI requires a scheme.
func parseAbsoluteURI(option, value string) (string, error) {
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || (u.Host == "" && u.Opaque == "") {
		re := invalidValue(option, value,
			fmt.Sprintf("unable to convert %s into an URI", strings.TrimPrefix(option, "--")))
		re.Err = err
		return "", re
	}
	return value, nil
}

// readLines returns the non-blank lines of a small text file.
func readLines(option, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		re := invalidValue(option, path, fmt.Sprintf("unable to read the file %s", path))
		re.Err = err
		return nil, re
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// splitNodes splits a node list on commas. A comma preceded by an odd
// number of backslashes belongs to the node (distinguished names contain
// escaped commas); the text is kept as typed.
func splitNodes(value string) []string {
	var nodes []string
	start := 0
	backslashes := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			backslashes++
			continue
		case ',':
			if backslashes%2 == 0 {
				nodes = append(nodes, value[start:i])
				start = i + 1
			}
		}
		backslashes = 0
	}
	return append(nodes, value[start:])
}

// splitList splits a comma separated list.
func splitList(value string) []string {
	return strings.Split(value, ",")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Resolution errors for the adaudit command line.
//
// STANDARDIZED PATTERN:
//   - Parsing and completeness checks return errors, never print them
//   - The application decides how to display them (red text, help)
//   - Callers inspect errors with errors.As / errors.Is

package cli

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrHelpRequested ends resolution after --help.
	ErrHelpRequested = errors.New("help requested")

	// ErrAborted ends resolution when the operator left the menus or
	// interrupted a prompt.
	ErrAborted = errors.New("interactive mode aborted")
)

// =============================================================================
// RESOLVE ERROR
// =============================================================================

// ErrorKind classifies resolution failures.
type ErrorKind int

const (
	// MissingArgument: an option requiring a value found none.
	MissingArgument ErrorKind = iota
	// InvalidValue: a value failed conversion or validation.
	InvalidValue
	// UnknownOption: a token not in the option table.
	UnknownOption
	// Incomplete: the completeness check failed after parsing.
	Incomplete
)

func (k ErrorKind) String() string {
	switch k {
	case MissingArgument:
		return "missing argument"
	case InvalidValue:
		return "invalid value"
	case UnknownOption:
		return "unknown option"
	case Incomplete:
		return "incomplete configuration"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ResolveError is the first error found while resolving a configuration.
type ResolveError struct {
	Kind   ErrorKind
	Option string // offending option, e.g. "--level"
	Value  string // offending value, if any

	// Accepted lists the valid values of a closed set.
	Accepted []string

	Reason     string
	Hint       string // printed on its own line after Reason
	Suggestion string // closest known option for UnknownOption

	Err error
}

func (e *ResolveError) Error() string {
	var msg string
	switch {
	case e.Reason != "":
		msg = e.Reason
	case e.Kind == MissingArgument:
		msg = fmt.Sprintf("argument for %s is mandatory", e.Option)
	case e.Kind == UnknownOption:
		msg = "unknown argument: " + e.Option
	case e.Kind == InvalidValue && len(e.Accepted) > 0:
		msg = fmt.Sprintf("invalid value [%s] for %s, accepted values: %s", e.Value, e.Option, strings.Join(e.Accepted, ","))
	case e.Kind == InvalidValue:
		msg = fmt.Sprintf("invalid value [%s] for %s", e.Value, e.Option)
	default:
		msg = e.Kind.String()
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
	}
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ShowHelp reports whether the help text should follow the error.
func (e *ResolveError) ShowHelp() bool {
	return e.Kind == UnknownOption || e.Kind == Incomplete
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

func missingArgument(option string) error {
	return &ResolveError{Kind: MissingArgument, Option: option}
}

func invalidValue(option, value, reason string) *ResolveError {
	return &ResolveError{Kind: InvalidValue, Option: option, Value: value, Reason: reason}
}

func unknownOption(token string) error {
	return &ResolveError{Kind: UnknownOption, Option: token, Suggestion: SuggestOption(token)}
}

func incomplete(option, reason, hint string) error {
	return &ResolveError{Kind: Incomplete, Option: option, Reason: reason, Hint: hint}
}

// IsKind reports whether err is a ResolveError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *ResolveError
	return errors.As(err, &re) && re.Kind == kind
}

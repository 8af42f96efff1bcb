// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/adaudit/internal/util"
)

// =============================================================================
// LINE READERS
// =============================================================================

// lineReader is the input side of a Terminal.
type lineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
	Close() error
}

// linerReader provides line editing and history on an interactive terminal.
type linerReader struct {
	state *liner.State
}

func newLinerReader() *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerReader{state: state}
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		return "", mapAbort(err)
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

func (r *linerReader) PasswordPrompt(prompt string) (string, error) {
	pass, err := r.state.PasswordPrompt(prompt)
	if errors.Is(err, liner.ErrNotTerminalOutput) {
		return readMaskedFallback(int(os.Stdin.Fd()), os.Stdout, prompt)
	}
	if err != nil {
		return "", mapAbort(err)
	}
	return pass, nil
}

func (r *linerReader) Close() error {
	return r.state.Close()
}

// streamReader reads plain lines from piped input.
type streamReader struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the descriptor used for masked reads, -1 when in is not a file.
	fd int
}

func newStreamReader(in io.Reader, out io.Writer) *streamReader {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &streamReader{in: bufio.NewReader(in), out: out, fd: fd}
}

func (r *streamReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		// A last line without newline still counts.
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(r.out)
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", mapAbort(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *streamReader) PasswordPrompt(prompt string) (string, error) {
	if r.fd < 0 {
		return r.Prompt(prompt)
	}
	return readMaskedFallback(r.fd, r.out, prompt)
}

func (r *streamReader) Close() error {
	return nil
}

// readMaskedFallback reads a secret with echo disabled.
func readMaskedFallback(fd int, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(out) // Add newline after hidden input
	if err != nil {
		return "", mapAbort(err)
	}
	return string(pass), nil
}

func mapAbort(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}

// =============================================================================
// TERMINAL
// =============================================================================

// lineWidth is the width of menu lines and separators.
const lineWidth = 77

// Terminal renders menus on a writer and reads answers from a line reader.
type Terminal struct {
	out io.Writer
	in  lineReader

	// Header is printed above every question.
	Header string
}

// NewTerminal reads answers from stdin. It uses line editing when stdin and
// stdout are both terminals and plain line reads otherwise.
func NewTerminal(out io.Writer) *Terminal {
	if IsTTY() && IsStdoutTTY() {
		return &Terminal{out: out, in: newLinerReader()}
	}
	return NewStreamTerminal(os.Stdin, out)
}

// NewStreamTerminal reads answers line by line from in.
func NewStreamTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{out: out, in: newStreamReader(in, out)}
}

// Close restores the terminal mode.
func (t *Terminal) Close() error {
	return t.in.Close()
}

func (t *Terminal) renderHeading(title, information, notice string) {
	if t.Header != "" {
		fmt.Fprintln(t.out, t.Header)
		fmt.Fprintln(t.out)
	}
	if title != "" {
		fmt.Fprintln(t.out, RenderConditional(TitleStyle, title))
		fmt.Fprintln(t.out, RenderSeparator(util.StringWidth(title)))
	}
	if information != "" {
		fmt.Fprintln(t.out, information)
	}
	if notice != "" {
		fmt.Fprintln(t.out, RenderConditional(WarningStyle, notice))
	}
}

func (t *Terminal) renderChoices(m Menu) {
	if m.Compact {
		t.renderCompact(m.Choices)
	} else {
		for i, c := range m.Choices {
			prefix := fmt.Sprintf("  %d-%s-", i+1, c.Key)
			description := util.TruncateWidth(c.Description, lineWidth-util.StringWidth(prefix))
			fmt.Fprintf(t.out, "  %d-%s-%s\n", i+1, RenderConditional(KeyStyle, c.Key), description)
		}
	}
	fmt.Fprintln(t.out, "  0-Exit")
	fmt.Fprintln(t.out, RenderSeparator())
}

func (t *Terminal) renderCompact(choices []Choice) {
	cellWidth := 0
	cells := make([]string, len(choices))
	for i, c := range choices {
		cells[i] = fmt.Sprintf("%d-%s", i+1, c.Key)
		if w := util.StringWidth(cells[i]); w > cellWidth {
			cellWidth = w
		}
	}
	cellWidth += 2
	columns := lineWidth / cellWidth
	if columns < 1 {
		columns = 1
	}
	var line strings.Builder
	for i, cell := range cells {
		line.WriteString(util.PadRight(cell, cellWidth))
		if (i+1)%columns == 0 || i == len(cells)-1 {
			fmt.Fprintln(t.out, "  "+strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
}

// SelectMenu implements Console.
func (t *Terminal) SelectMenu(m Menu) (int, error) {
	def := m.Default
	if def <= 0 || def > len(m.Choices) {
		def = 1
	}
	notice := m.Notice
	for {
		t.renderHeading(m.Title, m.Information, notice)
		t.renderChoices(m)

		answer, err := t.in.Prompt(fmt.Sprintf("Select a choice (default: %d): ", def))
		if err != nil {
			return 0, err
		}
		if choice, ok := parseChoice(answer, m.Choices, def); ok {
			return choice, nil
		}
		notice = fmt.Sprintf("Invalid choice: %s", strings.TrimSpace(answer))
	}
}

// parseChoice accepts an index, a key, or an empty answer for def.
func parseChoice(answer string, choices []Choice, def int) (int, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		if len(choices) == 0 {
			return 0, true
		}
		return def, true
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 0 && n <= len(choices) {
			return n, true
		}
		return 0, false
	}
	for i, c := range choices {
		if strings.EqualFold(c.Key, answer) {
			return i + 1, true
		}
	}
	return 0, false
}

// AskString implements Console.
func (t *Terminal) AskString(p Prompt) (string, error) {
	t.renderHeading(p.Title, p.Information, p.Notice)
	line, err := t.in.Prompt("")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskList implements Console.
func (t *Terminal) AskList(p Prompt) ([]string, error) {
	t.renderHeading(p.Title, p.Information, p.Notice)
	var list []string
	for {
		line, err := t.in.Prompt("")
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return list, nil
		}
		list = append(list, line)
	}
}

// AskPassword implements Console.
func (t *Terminal) AskPassword(prompt string) (string, error) {
	return t.in.PasswordPrompt(prompt)
}

// WaitForEnter blocks until a line is entered or input ends.
func (t *Terminal) WaitForEnter() {
	_, _ = t.in.Prompt("")
}

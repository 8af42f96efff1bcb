// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"fmt"
	"strconv"
	"strings"
)

// Abort is a scripted answer that interrupts the prompt it is given to.
const Abort = "\x03"

// Screen records one question asked through a Script.
type Screen struct {
	Kind        string // "menu", "string", "list" or "password"
	Title       string
	Information string
	Notice      string
	Choices     []Choice
	Default     int
}

// Script is a Console that answers from a fixed list and records every
// question it was asked. Running out of answers aborts the prompt.
type Script struct {
	answers []string
	next    int

	// Transcript holds the questions in the order they were asked.
	Transcript []Screen
}

// NewScript returns a console answering with answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Remaining is the number of answers not consumed yet.
func (s *Script) Remaining() int {
	return len(s.answers) - s.next
}

func (s *Script) pop() (string, error) {
	if s.next >= len(s.answers) {
		return "", ErrAborted
	}
	answer := s.answers[s.next]
	s.next++
	if answer == Abort {
		return "", ErrAborted
	}
	return answer, nil
}

// SelectMenu implements Console. Answers are indexes or choice keys.
func (s *Script) SelectMenu(m Menu) (int, error) {
	screen := Screen{
		Kind:        "menu",
		Title:       m.Title,
		Information: m.Information,
		Notice:      m.Notice,
		Choices:     append([]Choice(nil), m.Choices...),
		Default:     m.Default,
	}
	s.Transcript = append(s.Transcript, screen)

	answer, err := s.pop()
	if err != nil {
		return 0, err
	}
	def := m.Default
	if def <= 0 || def > len(m.Choices) {
		def = 1
	}
	choice, ok := parseChoice(answer, m.Choices, def)
	if !ok {
		return 0, fmt.Errorf("scripted answer %q is not a choice of %q", answer, m.Title)
	}
	return choice, nil
}

// AskString implements Console.
func (s *Script) AskString(p Prompt) (string, error) {
	s.record("string", p)
	answer, err := s.pop()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// AskList implements Console. Answers are consumed up to the first empty one.
func (s *Script) AskList(p Prompt) ([]string, error) {
	s.record("list", p)
	var list []string
	for {
		answer, err := s.pop()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(answer) == "" {
			return list, nil
		}
		list = append(list, strings.TrimSpace(answer))
	}
}

// AskPassword implements Console.
func (s *Script) AskPassword(prompt string) (string, error) {
	s.Transcript = append(s.Transcript, Screen{Kind: "password", Title: prompt})
	return s.pop()
}

func (s *Script) record(kind string, p Prompt) {
	s.Transcript = append(s.Transcript, Screen{
		Kind:        kind,
		Title:       p.Title,
		Information: p.Information,
		Notice:      p.Notice,
	})
}

// Titles lists the recorded question titles, handy in assertions.
func (s *Script) Titles() []string {
	titles := make([]string, len(s.Transcript))
	for i, screen := range s.Transcript {
		titles[i] = screen.Title
	}
	return titles
}

// Index formats a menu index as a scripted answer.
func Index(n int) string {
	return strconv.Itoa(n)
}

// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package prompt

import "fmt"

// Scripted is a non-interactive Prompter double: each call pops the next
// queued answer. Tests and non-TTY command paths use it in place of
// HuhPrompter.
type Scripted struct {
	Inputs   []string
	Selects  []string
	Confirms []bool

	inputIdx, selectIdx, confirmIdx int
}

func (s *Scripted) Input(_, _, _ string) (string, error) {
	if s.inputIdx >= len(s.Inputs) {
		return "", fmt.Errorf("prompt: no scripted input left")
	}
	v := s.Inputs[s.inputIdx]
	s.inputIdx++
	return v, nil
}

func (s *Scripted) Select(_, _ string, _ []Option) (string, error) {
	if s.selectIdx >= len(s.Selects) {
		return "", fmt.Errorf("prompt: no scripted select left")
	}
	v := s.Selects[s.selectIdx]
	s.selectIdx++
	return v, nil
}

func (s *Scripted) Confirm(_, _ string, defaultValue bool) (bool, error) {
	if s.confirmIdx >= len(s.Confirms) {
		return defaultValue, nil
	}
	v := s.Confirms[s.confirmIdx]
	s.confirmIdx++
	return v, nil
}

func (s *Scripted) Spin(_ string, action func() error) error {
	return action()
}

// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package prompt

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// HuhPrompter is the real terminal adapter, built the way the teacher's
// pkg/wizard forms are: one huh.NewForm per question, huh.ThemeCharm().
type HuhPrompter struct{}

// NewHuhPrompter returns the real terminal Prompter.
func NewHuhPrompter() *HuhPrompter { return &HuhPrompter{} }

func (HuhPrompter) Input(title, description, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(placeholder).
				Value(&value),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

func (HuhPrompter) Select(title, description string, options []Option) (string, error) {
	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		huhOptions = append(huhOptions, huh.NewOption(o.Label, o.Value))
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(huhOptions...).
				Value(&value),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

func (HuhPrompter) Confirm(title, description string, defaultValue bool) (bool, error) {
	value := defaultValue
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&value),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return false, err
	}
	return value, nil
}

func (HuhPrompter) Spin(title string, action func() error) error {
	var runErr error
	err := spinner.New().
		Title(title).
		Action(func() { runErr = action() }).
		Run()
	if err != nil {
		return err
	}
	return runErr
}

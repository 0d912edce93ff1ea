// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for tokenpress command output.
//
// Command handlers style their output through this one palette so run,
// stats, export, and config all look alike. Colors degrade to plain text
// for piped output and under NO_COLOR (see terminal.go).

package cli

import "github.com/charmbracelet/lipgloss"

// init pins the lipgloss color profile to what the terminal actually
// supports before any style renders.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle heads command output (e.g. the config listing).
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	// LabelStyle renders fixed-width field labels; RenderLabel can widen it.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(20)

	// ValueStyle renders ordinary values next to labels and status marks.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// SuccessStyle marks completed work, e.g. the ✓ on a recorded run.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// ErrorStyle marks per-file failures and the fatal error line in main.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// WarningStyle marks non-fatal degradation, e.g. stats not persisted.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// RenderLabel renders a label at LabelStyle's default width, or at an
// explicit width when one is given.
func RenderLabel(label string, width ...int) string {
	if len(width) > 0 && width[0] > 0 {
		return LabelStyle.Copy().Width(width[0]).Render(label)
	}
	return LabelStyle.Render(label)
}

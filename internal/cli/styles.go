// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// init configures lipgloss color profile based on terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// SuggestionStyle renders a command proposed by the model.
	// Bold yellow, the classic ANSI 1;33.
	SuggestionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("3"))

	// SuccessStyle is used for completed steps
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	// ErrorStyle is used for fatal diagnostics
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// WarningStyle is used for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// DimStyle is used for hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray
)

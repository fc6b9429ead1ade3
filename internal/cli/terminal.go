// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for helios.
//
// Colors are used only when stdout is a terminal, and the NO_COLOR and
// FORCE_COLOR conventions are honored.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	// colorsEnabled caches the color support decision
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled returns true if colored output should be used.
// See https://no-color.org/ for the NO_COLOR specification.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		// NO_COLOR takes precedence (any non-empty value disables colors)
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}

		// FORCE_COLOR overrides TTY detection
		if os.Getenv("FORCE_COLOR") != "" {
			colorsEnabled = true
			return
		}

		colorsEnabled = IsStdoutTTY()
	})
	return colorsEnabled
}

// GetColorProfile returns the termenv color profile to render with.
// Returns Ascii (no colors) for non-TTY or when NO_COLOR is set.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

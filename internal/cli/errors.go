// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrBackendUnavailable means the model inventory could not be fetched.
	ErrBackendUnavailable = errors.New("model backend unavailable")

	// ErrNoSelection means the user ended model selection without a model,
	// by declining, interrupting, or a failed download.
	ErrNoSelection = errors.New("no model selected")
)

// isInterrupt reports whether err ends input: Ctrl+C at a prompt or end of
// input.
func isInterrupt(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF)
}

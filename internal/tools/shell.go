// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
}

// =============================================================================
// SHELL
// =============================================================================

// Runner executes a command string synchronously.
type Runner interface {
	Run(command string) error
}

// Shell runs commands through a shell interpreter, inheriting the terminal's
// standard streams unless they are overridden.
type Shell struct {
	Path string
	Flag string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultShellPath returns the interpreter used when none is configured.
func DefaultShellPath() string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd"
	}
	return "/bin/sh"
}

// NewShell creates a shell for path, or the platform default when path is
// empty. The command flag is derived from the interpreter name.
func NewShell(path string) *Shell {
	if path == "" {
		path = DefaultShellPath()
	}
	return &Shell{
		Path:   path,
		Flag:   commandFlag(path),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func commandFlag(path string) string {
	// Split on both separators so Windows paths parse on any host.
	base := path[strings.LastIndexAny(path, `/\`)+1:]
	name := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	switch name {
	case "cmd":
		return "/C"
	case "powershell", "pwsh":
		return "-Command"
	default:
		return "-c"
	}
}

// Run executes command and waits for it. A non-zero exit is returned as
// *ExitError; failures to start the interpreter are returned as-is.
func (s *Shell) Run(command string) error {
	cmd := exec.Command(s.Path, s.Flag, command)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: command, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to start %s: %w", s.Path, err)
}

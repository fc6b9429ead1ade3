// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/helios/internal/util"
)

// Console reads lines from the user. ReadLine records the line in history;
// Ask does not, so confirmations and menu answers stay out of it.
// Both return liner.ErrPromptAborted on Ctrl+C and io.EOF at end of input.
type Console interface {
	ReadLine(prompt string) (string, error)
	Ask(prompt string) (string, error)
}

// readContext runs read and returns ctx's error as soon as ctx is done, even
// while read is still blocked on the terminal. A line that arrives after
// cancellation is discarded.
func readContext(ctx context.Context, read func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := read()
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return r.line, r.err
	}
}

func readLine(ctx context.Context, c Console, prompt string) (string, error) {
	return readContext(ctx, func() (string, error) { return c.ReadLine(prompt) })
}

func ask(ctx context.Context, c Console, prompt string) (string, error) {
	return readContext(ctx, func() (string, error) { return c.Ask(prompt) })
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineConsole provides input history and line editing on the terminal.
type LineConsole struct {
	line        *liner.State
	historyFile string
	logger      *zap.Logger
}

// NewLineConsole creates a console. When historyFile is non-empty, existing
// history is loaded from it, each entered line is appended to it, and Close
// writes it back.
func NewLineConsole(historyFile string, logger *zap.Logger) *LineConsole {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &LineConsole{
		line:        line,
		historyFile: historyFile,
		logger:      logger,
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *LineConsole) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	f, err := os.Open(c.historyFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("could not open history", zap.String("path", c.historyFile), zap.Error(err))
		}
		return
	}
	defer f.Close()

	if _, err := c.line.ReadHistory(f); err != nil {
		c.logger.Warn("could not read history", zap.String("path", c.historyFile), zap.Error(err))
	}
}

// ReadLine reads a line of input with the given prompt.
func (c *LineConsole) ReadLine(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.record(input)
	}
	return input, nil
}

// record adds line to the in-memory history and appends it to the history
// file at once, so a crash loses nothing already entered. Close rewrites the
// file from memory.
func (c *LineConsole) record(line string) {
	c.line.AppendHistory(line)
	if c.historyFile == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0o700); err != nil {
		c.logger.Warn("could not create history directory", zap.String("path", c.historyFile), zap.Error(err))
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		c.logger.Warn("could not open history", zap.String("path", c.historyFile), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		c.logger.Warn("could not append history", zap.String("path", c.historyFile), zap.Error(err))
	}
}

// Ask reads an answer without recording it.
func (c *LineConsole) Ask(prompt string) (string, error) {
	return c.line.Prompt(prompt)
}

// SaveHistory persists command history, owner read/write only.
func (c *LineConsole) SaveHistory() error {
	if c.historyFile == "" {
		return nil
	}
	return util.WriteFileAtomic(c.historyFile, 0o600, func(w io.Writer) error {
		_, err := c.line.WriteHistory(w)
		return err
	})
}

// Close saves history and restores the terminal.
func (c *LineConsole) Close() error {
	if err := c.SaveHistory(); err != nil {
		c.logger.Warn("could not save history", zap.String("path", c.historyFile), zap.Error(err))
	}
	return c.line.Close()
}

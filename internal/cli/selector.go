// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/jeranaias/helios/internal/ollama"
)

// Backend is the model-serving service. *ollama.Client satisfies it.
type Backend interface {
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
	Chat(ctx context.Context, model string, messages []ollama.Message) (*ollama.ChatResponse, error)
	Pull(ctx context.Context, model string) (*ollama.PullStream, error)
}

var _ Backend = (*ollama.Client)(nil)

// minStatusPad is the number of spaces a status line always gets, enough to
// cover the tail of a shorter progress line.
const minStatusPad = 20

// Selector lists the installed models and lets the user pick or download one.
type Selector struct {
	backend Backend
	console Console
	out     io.Writer
	logger  *zap.Logger
}

// NewSelector creates a selector that prompts on console and prints to out.
func NewSelector(backend Backend, console Console, out io.Writer, logger *zap.Logger) *Selector {
	return &Selector{
		backend: backend,
		console: console,
		out:     out,
		logger:  logger,
	}
}

// =============================================================================
// SELECTION
// =============================================================================

// Select fetches the model inventory and returns the model the user chose.
// It returns ErrBackendUnavailable when the inventory cannot be fetched and
// ErrNoSelection when the user ends up without a model. With no models
// installed it goes straight to the download flow.
func (s *Selector) Select(ctx context.Context) (string, error) {
	fmt.Fprintln(s.out, "\nRequesting model inventory from the Ollama service...")

	models, err := s.backend.ListModels(ctx)
	if err != nil {
		s.logger.Warn("model inventory failed", zap.Error(err))
		fmt.Fprintln(s.out)
		if unreachable(err) {
			fmt.Fprintln(s.out, ErrorStyle.Render("❌ Critical Error: I am unable to communicate with the Ollama service."))
			fmt.Fprintln(s.out, "   Please ensure the Ollama application is installed and running on your system.")
		} else {
			fmt.Fprintln(s.out, ErrorStyle.Render(fmt.Sprintf("❌ A critical error occurred during the model scan: %v", err)))
		}
		return "", fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	s.logger.Debug("model inventory", zap.Int("count", len(models)))

	if len(models) == 0 {
		fmt.Fprintln(s.out, WarningStyle.Render("⚠️ I can find no Ollama models on your system."))
		name, err := ask(ctx, s.console, "Please specify a model to download (e.g., 'qwen:0.5b'): ")
		if err != nil {
			return "", noSelection(err)
		}
		return s.Download(ctx, name)
	}

	fmt.Fprintln(s.out, "I have detected the following valid models on your system:")
	for i, m := range models {
		fmt.Fprintf(s.out, "  %d: %s (File Size: %s GiB)\n", i+1, m.ID(), formatGiB(m.Size))
	}
	downloadChoice := len(models) + 1
	fmt.Fprintf(s.out, "  %d: [Download a new model]\n", downloadChoice)

	for {
		fmt.Fprintln(s.out)
		answer, err := ask(ctx, s.console, "Which model shall I use, sir? (Enter number): ")
		if err != nil {
			return "", noSelection(err)
		}
		if answer == "" {
			continue
		}

		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter a number corresponding to your choice.")
			continue
		}

		switch {
		case choice >= 1 && choice <= len(models):
			name := models[choice-1].ID()
			fmt.Fprintf(s.out, "A fine choice. I will utilize the '%s' model.\n", name)
			return name, nil
		case choice == downloadChoice:
			name, err := ask(ctx, s.console, "Please specify the model to download: ")
			if err != nil {
				return "", noSelection(err)
			}
			return s.Download(ctx, name)
		default:
			fmt.Fprintln(s.out, "A minor miscalculation. Please select a valid number.")
		}
	}
}

// =============================================================================
// DOWNLOAD
// =============================================================================

// Download pulls name after the user confirms, drawing progress on a single
// line. Declines and failures are reported and returned as ErrNoSelection.
func (s *Selector) Download(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(s.out, "A model name must be specified.")
		return "", ErrNoSelection
	}

	answer, err := ask(ctx, s.console, fmt.Sprintf("Shall I download '%s' for you? (y/n): ", name))
	if err != nil {
		return "", noSelection(err)
	}
	if !isYes(answer) {
		fmt.Fprintln(s.out, "Very well. I cannot proceed without a model.")
		return "", ErrNoSelection
	}

	fmt.Fprintf(s.out, "Excellent. Commencing download of '%s'.\n", name)
	if err := s.pull(ctx, name); err != nil {
		s.logger.Warn("model download failed", zap.String("model", name), zap.Error(err))
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, ErrorStyle.Render(fmt.Sprintf("❌ An unexpected error occurred during the download: %v", err)))
		return "", fmt.Errorf("%w: %w", ErrNoSelection, err)
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, SuccessStyle.Render(fmt.Sprintf("✔️ '%s' has been successfully downloaded.", name)))
	s.logger.Info("model downloaded", zap.String("model", name))
	return name, nil
}

func (s *Selector) pull(ctx context.Context, name string) error {
	stream, err := s.backend.Pull(ctx, name)
	if err != nil {
		return err
	}
	defer stream.Close()

	lastWidth := 0
	for {
		p, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if pct, ok := p.Percent(); ok {
			line := progressLine(pct, *p.Completed, *p.Total)
			lastWidth = runewidth.StringWidth(line)
			fmt.Fprint(s.out, "\r"+line)
		} else if p.Status != "" {
			fmt.Fprint(s.out, "\r"+padStatus(p.Status, lastWidth)+"\n")
			lastWidth = 0
		}
	}
}

func progressLine(pct float64, completed, total int64) string {
	return fmt.Sprintf("Downloading: %.2f%% complete (%s / %s)",
		pct, humanize.IBytes(nonNegative(completed)), humanize.IBytes(nonNegative(total)))
}

// padStatus pads status with spaces so it fully covers a previous line of
// width prev.
func padStatus(status string, prev int) string {
	pad := prev - runewidth.StringWidth(status)
	if pad < minStatusPad {
		pad = minStatusPad
	}
	return status + strings.Repeat(" ", pad)
}

// =============================================================================
// HELPERS
// =============================================================================

// formatGiB renders a byte count in GiB rounded to one decimal.
func formatGiB(size int64) string {
	return strconv.FormatFloat(float64(size)/(1<<30), 'f', 1, 64)
}

func nonNegative(n int64) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// unreachable reports whether a listing error means the service could not be
// reached at all.
func unreachable(err error) bool {
	var ce *ollama.ClientError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Type {
	case ollama.ErrTypeNotRunning, ollama.ErrTypeConnection, ollama.ErrTypeTimeout:
		return true
	default:
		return false
	}
}

func noSelection(err error) error {
	if isInterrupt(err) {
		return ErrNoSelection
	}
	return fmt.Errorf("%w: %w", ErrNoSelection, err)
}

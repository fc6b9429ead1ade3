// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the diagnostic logger.
//
// Diagnostics go to stderr or a file and never replace the conversational
// output printed to stdout.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/helios/internal/config"
)

// New builds a console-encoded logger at cfg.Level writing to cfg.Path, or to
// stderr when the path is empty.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	output := "stderr"
	if cfg.Path != "" {
		output = cfg.Path
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("helios"), nil
}

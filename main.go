// helios - natural language to shell commands, through a local Ollama model.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jeranaias/helios/internal/cli"
	"github.com/jeranaias/helios/internal/config"
	"github.com/jeranaias/helios/internal/logging"
	"github.com/jeranaias/helios/internal/ollama"
	"github.com/jeranaias/helios/internal/tools"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return cli.ExitConfigError
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return cli.ExitGeneralError
	}
	defer func() { _ = logger.Sync() }()

	// A signal cancels ctx, which aborts a pending model call and ends the
	// session from any prompt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands := cli.Calibrate(os.Stdout)
	client := ollama.NewClientWithConfig(cfg.Ollama.ClientConfig())

	logger.Debug("starting",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.String("ollama_url", client.BaseURL()),
		zap.Int("commands", commands.Len()))

	historyFile := ""
	if cfg.History.IsEnabled() {
		historyFile = cfg.History.Path
	}
	console := cli.NewLineConsole(historyFile, logger)
	defer console.Close()

	selector := cli.NewSelector(client, console, os.Stdout, logger)
	modelName, err := cli.StartupModel(ctx, selector, os.Stdout)
	if err != nil {
		// Ending without a model is a normal shutdown.
		logger.Debug("startup selection failed", zap.Error(err))
		return cli.ExitSuccess
	}

	session := cli.NewSession(modelName, commands)
	shell := tools.NewShell(cfg.Shell.Path)
	chat := cli.NewChat(session, client, console, shell, selector, os.Stdout, logger)

	if err := chat.Run(ctx); err != nil {
		logger.Error("session ended", zap.Error(err))
		return cli.ExitGeneralError
	}
	return cli.ExitSuccess
}

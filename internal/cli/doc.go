// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the interactive helios session.
//
// A session reads a line, classifies it, and either handles a meta-command,
// runs a known command directly, or asks the model to translate the line into
// a shell command that is shown and confirmed before it runs.
//
// # Key Types
//
//   - Session: active model, command index and conversation memory
//   - Chat: the read-classify-act loop
//   - Selector: model inventory menu and download flow
//   - Console: line input, backed by liner in production
//
// # Usage
//
//	sel := cli.NewSelector(client, console, os.Stdout, logger)
//	name, err := cli.StartupModel(ctx, sel, os.Stdout)
//	if err != nil {
//	    return
//	}
//	chat := cli.NewChat(cli.NewSession(name, commands), client, console, shell, sel, os.Stdout, logger)
//	chat.Run(ctx)
package cli

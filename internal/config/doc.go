// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads helios configuration.
//
// Configuration is read from a TOML file, then environment variables are
// applied on top, then the result is validated.
//
// # Configuration Precedence
//
//   - Environment variables (HELIOS_*, OLLAMA_HOST)
//   - $HELIOS_CONFIG, or ~/.helios/config.toml
//   - Built-in defaults
//
// A missing config file is not an error. The file is never written.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    os.Exit(cli.ExitConfigError)
//	}
//	client := ollama.NewClientWithConfig(cfg.Ollama.ClientConfig())
package config

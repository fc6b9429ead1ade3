// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"os/user"

	"github.com/jeranaias/helios/internal/util"
)

// DynamicPrompt renders "user@host:cwd $ ", recomputed on every call so it
// follows directory changes. The home directory prefix of cwd shows as "~".
func DynamicPrompt() string {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	home, _ := os.UserHomeDir()
	return formatPrompt(currentUser(), host, util.AbbreviateHome(cwd, home))
}

func formatPrompt(name, host, cwd string) string {
	return fmt.Sprintf("%s@%s:%s $ ", name, host, cwd)
}

func currentUser() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "user"
}

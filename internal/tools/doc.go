// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools runs command strings through the platform shell.
//
// Commands are handed to the shell verbatim with shell=true semantics. No
// argument sanitization is performed; callers own the trust decision.
//
// # Usage
//
//	sh := tools.NewShell("")
//	if err := sh.Run("ls -la"); err != nil {
//	    var exitErr *tools.ExitError
//	    if errors.As(err, &exitErr) {
//	        fmt.Println("exit code", exitErr.Code)
//	    }
//	}
package tools

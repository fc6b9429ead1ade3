// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index builds the set of commands that can be run directly.
//
// The index is a heuristic classifier, not a security boundary. It records
// entry names found on the search path and does not resolve which binary the
// shell would actually pick.
//
// # Usage
//
//	cmds := index.Build()
//	if cmds.Contains("ls") {
//	    // run without asking the model
//	}
package index

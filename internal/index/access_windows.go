// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package index

import "io/fs"

// isExecutable reports true for every regular file. Windows has no execute
// bit; the shell decides through PATHEXT.
func isExecutable(_ string, _ fs.FileInfo) bool {
	return true
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package index

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// isExecutable asks the kernel whether the current user may execute path,
// which accounts for ownership, groups and ACLs.
func isExecutable(path string, _ fs.FileInfo) bool {
	return unix.Access(path, unix.X_OK) == nil
}

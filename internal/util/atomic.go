// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic streams content produced by write into path. The data goes
// to a temp file in the same directory, is synced, then renamed over path, so
// readers see either the old file or the complete new one.
func WriteFileAtomic(path string, perm os.FileMode, write func(io.Writer) error) (err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(absPath)+"-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := f.Name()

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tempPath)
		}
	}()

	if err = write(f); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync data to disk: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err = os.Rename(tempPath, absPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

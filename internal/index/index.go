// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"os"
	"path/filepath"
)

// Set is an immutable set of executable names.
type Set struct {
	names map[string]struct{}
}

// NewSet creates a set from explicit names.
func NewSet(names ...string) Set {
	s := Set{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is a known executable.
func (s Set) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of distinct names.
func (s Set) Len() int {
	return len(s.names)
}

// Build scans the directories listed in PATH.
func Build() Set {
	return BuildFrom(os.Getenv("PATH"))
}

// BuildFrom scans a search-path string split on the platform list separator.
// Directories that are missing or unreadable are skipped.
func BuildFrom(pathList string) Set {
	s := NewSet()

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			// Stat follows symlinks so linked binaries count.
			info, err := os.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if isExecutable(full, info) {
				s.names[entry.Name()] = struct{}{}
			}
		}
	}

	return s
}

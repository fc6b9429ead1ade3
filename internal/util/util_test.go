// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestWriteFileAtomic_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	require.NoError(t, WriteFileAtomic(path, 0o600, writeString("ls\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ls\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, WriteFileAtomic(path, 0o600, writeString("old\n")))
	require.NoError(t, WriteFileAtomic(path, 0o600, writeString("new\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestWriteFileAtomic_WriterErrorKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	require.NoError(t, WriteFileAtomic(path, 0o600, writeString("keep\n")))

	boom := errors.New("boom")
	err := WriteFileAtomic(path, 0o600, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is removed")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".helios_history"), ExpandHome("~/.helios_history"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/etc/hosts", ExpandHome("/etc/hosts"))
	assert.Equal(t, "~user/file", ExpandHome("~user/file"))
}

func TestAbbreviateHome(t *testing.T) {
	sep := string(filepath.Separator)
	home := sep + filepath.Join("home", "tony")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"home itself", home, "~"},
		{"below home", filepath.Join(home, "src"), "~" + sep + "src"},
		{"sibling prefix", home + "ny", home + "ny"},
		{"elsewhere", sep + "tmp", sep + "tmp"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AbbreviateHome(tc.path, home))
		})
	}

	assert.Equal(t, sep+"tmp", AbbreviateHome(sep+"tmp", sep), "root home is not abbreviated")
}

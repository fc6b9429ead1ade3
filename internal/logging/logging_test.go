// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/helios/internal/config"
)

func TestNew_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helios.log")

	logger, err := New(config.LogConfig{Level: "info", Path: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("route chosen", zap.String("route", "direct"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "helios")
	assert.Contains(t, out, "route chosen")
	assert.Contains(t, out, `"route"`)
	assert.Contains(t, out, `"direct"`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_LevelIsCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helios.log")

	logger, err := New(config.LogConfig{Level: "WARN", Path: path})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"})
	require.Error(t, err)
}

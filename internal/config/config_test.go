// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ARC_BOOKSHELF_STORAGE", "ARC_BOOKSHELF_PATH", "ARC_BOOKSHELF_LOG_LEVEL", "ARC_BOOKSHELF_LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, 20.0, cfg.Web.WriteRate)
	assert.Empty(t, cfg.Source())
}

func TestLoadFileYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: file
  path: /tmp/shelf.json
log:
  level: debug
  json: true
ui:
  theme: dark
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/shelf.json", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "127.0.0.1", cfg.Web.Bind, "unset keys keep defaults")
	assert.Equal(t, path, cfg.Source())
}

func TestEnvOverrides(t *testing.T) {
	t.Run("storage backend and path", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ARC_BOOKSHELF_STORAGE", "Memory")
		t.Setenv("ARC_BOOKSHELF_PATH", "/data/shelf.db")

		cfg, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, cfg.Storage.Backend)
		assert.Equal(t, "/data/shelf.db", cfg.Storage.Path)
	})

	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))
		t.Setenv("ARC_BOOKSHELF_LOG_LEVEL", "error")
		t.Setenv("ARC_BOOKSHELF_LOG_FILE", "/tmp/shelf.log")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Log.Level)
		assert.Equal(t, "/tmp/shelf.log", cfg.Log.File)
	})
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARC_BOOKSHELF_STORAGE", "postgres")
	_, err := LoadFile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")

	cfg := Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Web.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Web.WriteRate = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadFileBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

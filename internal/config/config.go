// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-bookshelf settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
	Web     WebConfig     `yaml:"web"`

	// path the config was read from, empty when defaults were used
	source string
}

// StorageConfig selects where the shelf snapshot is written.
type StorageConfig struct {
	Backend string `yaml:"backend"` // sqlite, file, memory
	Path    string `yaml:"path"`    // database or JSON file; empty uses the backend default
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty logs to stderr
	JSON  bool   `yaml:"json"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, or empty to detect
}

// WebConfig holds defaults for the serve command.
type WebConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`

	// WriteRate limits mutating API requests per second; 0 disables.
	WriteRate  float64 `yaml:"write_rate"`
	WriteBurst int     `yaml:"write_burst"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendSQLite},
		Log:     LogConfig{Level: "warn"},
		Web:     WebConfig{Bind: "127.0.0.1", Port: 8080, WriteRate: 20, WriteBurst: 10},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/arc-bookshelf/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "arc-bookshelf", "config.yaml")
}

// Load reads the config file named by ARC_BOOKSHELF_CONFIG or DefaultPath,
// then applies environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path := os.Getenv("ARC_BOOKSHELF_CONFIG")
	if path == "" {
		path = DefaultPath()
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.source = path
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Source returns the file the config came from, or "".
func (c *Config) Source() string { return c.source }

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ARC_BOOKSHELF_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("ARC_BOOKSHELF_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("ARC_BOOKSHELF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ARC_BOOKSHELF_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate rejects unknown backends and log levels.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (choose sqlite, file, or memory)", c.Storage.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	if c.Web.WriteRate < 0 {
		return fmt.Errorf("invalid web write_rate %v", c.Web.WriteRate)
	}
	return nil
}

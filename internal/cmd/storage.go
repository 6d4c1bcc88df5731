// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/kv"
)

// openBackend opens the configured KV backend. If a persistent backend
// cannot be opened (missing, corrupted, permissions) it falls back to the
// in-memory store so the tool stays usable without persistence.
func openBackend(cfg config.StorageConfig, stderr io.Writer) kv.KVStore {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := kv.OpenSQLiteStore(cfg.Path)
		if err != nil {
			warnFallback(stderr, "SQLite database", err)
			return kv.NewMemoryStore()
		}
		return s

	case config.BackendFile:
		s, err := kv.OpenFileStore(cfg.Path)
		if err != nil {
			warnFallback(stderr, "shelf file", err)
			return kv.NewMemoryStore()
		}
		return s

	default:
		return kv.NewMemoryStore()
	}
}

func warnFallback(w io.Writer, what string, err error) {
	fmt.Fprintf(w, "WARNING: cannot open %s: %v\n", what, err)
	fmt.Fprintln(w, "         falling back to in-memory store (no persistence)")
}

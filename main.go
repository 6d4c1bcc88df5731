// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/mtreilly/arc-bookshelf/internal/cmd"
	"github.com/mtreilly/arc-bookshelf/internal/config"
)

func main() {
	// Storage backend, log level and paths come from the config file and
	// ARC_BOOKSHELF_* environment variables. If the configured backend
	// cannot be opened, the commands fall back to an in-memory store.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-bookshelf: failed to load config: %v\n", err)
		os.Exit(1)
	}

	root := cmd.NewRootCmd(cfg)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/kv"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/logging"
)

// app is what every subcommand works with. It is filled in by the root
// command's PersistentPreRunE, once the subcommand is known.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	kv    kv.KVStore
	shelf *library.Shelf
	now   func() time.Time
}

// Option configures the root command.
type Option func(*app)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// WithKV uses backend instead of opening the configured one.
func WithKV(backend kv.KVStore) Option {
	return func(a *app) { a.kv = backend }
}

// NewRootCmd creates the root command for arc-bookshelf.
func NewRootCmd(cfg *config.Config, opts ...Option) *cobra.Command {
	a := &app{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "arc-bookshelf",
		Short: "Keep track of the books you have and have read",
		Long: `A personal bookshelf with two shelves: unread and read.

arc-bookshelf provides tools to:
- Add, edit and delete books
- Move books between the unread and read shelves
- Search by title, author or year
- Browse and edit the shelf in a terminal UI or a local web page`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newToggleCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newWebCmd(a))
	root.AddCommand(newUICmd(a))

	return root
}

func (a *app) open(cmd *cobra.Command) error {
	var err error
	if cmd.Name() == "ui" {
		a.log, err = logging.ForTerminalUI(a.cfg.Log)
	} else {
		a.log, err = logging.New(a.cfg.Log)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if a.kv == nil {
		a.kv = openBackend(a.cfg.Storage, cmd.ErrOrStderr())
	}
	a.log.Debug("storage ready", zap.String("backend", a.cfg.Storage.Backend), zap.String("config", a.cfg.Source()))

	a.shelf = library.NewShelf(
		library.NewKVPersister(a.kv, a.log),
		library.WithClock(a.now),
		library.WithLogger(a.log),
	)
	return nil
}

func (a *app) close() {
	if a.kv != nil {
		_ = a.kv.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

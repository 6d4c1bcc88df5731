// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-bookshelf/internal/kv"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newWatchCmd(a *app) *cobra.Command {
	var showBooks bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the shelf file and report changes",
		Long: `Follow the stored shelf and print a summary every time another
process (the terminal UI, the web view, another command) saves it.

Only the file backend can be watched.

Examples:
  ARC_BOOKSHELF_STORAGE=file arc-bookshelf watch
  arc-bookshelf watch --books`,
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, ok := a.kv.(kv.Watcher)
			if !ok {
				return fmt.Errorf("storage backend %q cannot be watched (use the file backend)", a.cfg.Storage.Backend)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchShelf(ctx, watcher, a.kv, a.log, cmd.OutOrStdout(), showBooks)
		},
	}

	cmd.Flags().BoolVarP(&showBooks, "books", "b", false, "Print both shelves on every change")
	return cmd
}

// watchShelf prints the stored shelf once and again after every change
// until ctx is cancelled.
func watchShelf(ctx context.Context, watcher kv.Watcher, store kv.KVStore, log *zap.Logger, w io.Writer, showBooks bool) error {
	persister := library.NewKVPersister(store, log)

	report := func() {
		books := persister.Load()
		incomplete, complete := library.Partition(books)
		fmt.Fprintf(w, "[%s] %d book(s): %d unread, %d read\n",
			time.Now().Format("15:04:05"), len(books), len(incomplete), len(complete))
		if showBooks {
			renderShelf(w, "Unread", incomplete)
			renderShelf(w, "Read", complete)
		}
	}

	report()
	fmt.Fprintln(w, "Press Ctrl+C to stop watching")

	if err := watcher.Watch(ctx, report); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

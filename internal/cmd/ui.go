// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/tui"
)

func newUICmd(a *app) *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse and edit the shelf in the terminal",
		Long: `Open the full-screen shelf: unread books on the left, read books on
the right.

Keys:
  a        add a book
  e        edit the selected book
  t        move the book to the other shelf
  d        delete (asks y/n)
  /        search
  tab      switch shelf
  q        quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("theme") {
				theme = a.cfg.UI.Theme
			}
			return tui.Run(a.shelf,
				tui.WithClock(a.now),
				tui.WithLogger(a.log),
				tui.WithStyles(tui.NewStyles(tui.ThemeByName(theme))),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Color theme: light, dark (default: detect)")
	return cmd
}

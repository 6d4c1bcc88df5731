// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid book id %q", raw)
	}
	return id, nil
}

func (a *app) lookup(raw string) (library.Book, error) {
	id, err := parseID(raw)
	if err != nil {
		return library.Book{}, err
	}
	b, ok := a.shelf.Get(id)
	if !ok {
		return library.Book{}, fmt.Errorf("book not found: %d", id)
	}
	return b, nil
}

func (a *app) warnMemoryOnly(cmd *cobra.Command) {
	if a.shelf.MemoryOnly() {
		fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: storage unavailable, changes will not be saved")
	}
}

func newAddCmd(a *app) *cobra.Command {
	var complete bool

	cmd := &cobra.Command{
		Use:   "add <title> <author> <year>",
		Short: "Add a book to the shelf",
		Long: `Add a book to the unread shelf, or to the read shelf with --complete.

A year later than the current year is stored as the current year.

Examples:
  arc-bookshelf add "Dune" "Frank Herbert" 1965
  arc-bookshelf add "Emma" "Jane Austen" 1815 --complete`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := library.CreateForm{
				Title:      args[0],
				Author:     args[1],
				Year:       args[2],
				IsComplete: complete,
			}
			b, err := form.Submit(a.shelf, a.now())
			if err != nil {
				return err
			}
			a.warnMemoryOnly(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q by %s (%d) to the %s shelf [id %d]\n",
				b.Title, b.Author, b.Year, shelfName(b), b.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&complete, "complete", "c", false, "Put the book on the read shelf")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, author, year string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book's title, author or year",
		Long: `Edit a book. Fields that are not given keep their current value.

Examples:
  arc-bookshelf edit 1717000000000 --title "Dune Messiah"
  arc-bookshelf edit 1717000000000 --year 1969`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.lookup(args[0])
			if err != nil {
				return err
			}

			form := library.EditForm{
				Title:  b.Title,
				Author: b.Author,
				Year:   strconv.Itoa(b.Year),
			}
			if cmd.Flags().Changed("title") {
				form.Title = title
			}
			if cmd.Flags().Changed("author") {
				form.Author = author
			}
			if cmd.Flags().Changed("year") {
				form.Year = year
			}

			session := library.NewEditSession(a.now)
			session.Open(b)
			updated, err := form.Submit(session, a.shelf)
			if err != nil {
				return err
			}
			a.warnMemoryOnly(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q by %s (%d)\n", updated.Title, updated.Author, updated.Year)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "New author")
	cmd.Flags().StringVarP(&year, "year", "y", "", "New year")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a book after confirmation",
		Long: `Delete a book. You are asked to confirm unless --yes is given.

Examples:
  arc-bookshelf remove 1717000000000
  arc-bookshelf rm 1717000000000 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pending, err := a.shelf.RequestDelete(id)
			if errors.Is(err, library.ErrBookNotFound) {
				return fmt.Errorf("book not found: %d", id)
			}
			if err != nil {
				return err
			}

			decision := library.Proceed
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q? [y/N] ", pending.Title)
				decision = readDecision(bufio.NewReader(cmd.InOrStdin()))
			}

			removed, err := a.shelf.ResolveConfirmation(pending.Token, decision)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}
			a.warnMemoryOnly(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", pending.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// readDecision reads one answer line. Anything but y or yes aborts,
// including end of input.
func readDecision(r *bufio.Reader) library.Decision {
	line, _ := r.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return library.Proceed
	default:
		return library.Abort
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Move a book between the unread and read shelves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			a.shelf.ToggleStatus(b.ID)
			b, _ = a.shelf.Get(b.ID)
			a.warnMemoryOnly(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to the %s shelf\n", b.Title, shelfName(b))
			return nil
		},
	}
}

func shelfName(b library.Book) string {
	if b.IsComplete {
		return "read"
	}
	return "unread"
}

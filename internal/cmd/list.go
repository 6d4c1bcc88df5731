// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newListCmd(a *app) *cobra.Command {
	var out output.OutputOptions
	var query string
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the books on both shelves",
		Long: `List the books on the shelf, split into unread and read.

Examples:
  arc-bookshelf list                     # Both shelves
  arc-bookshelf list --query herbert     # Only matching books
  arc-bookshelf list --status complete   # Only the read shelf
  arc-bookshelf list -o json             # Machine readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}

			books := a.shelf.List(&library.ListOptions{
				Query:  library.NormalizeQuery(query),
				Status: st,
				Limit:  limit,
			})

			if !out.Is(output.OutputTable) {
				return out.Encode(cmd.OutOrStdout(), books)
			}

			w := cmd.OutOrStdout()
			if len(books) == 0 {
				if query != "" {
					fmt.Fprintf(w, "No books match %q.\n", query)
					return nil
				}
				fmt.Fprintln(w, "The shelf is empty.")
				fmt.Fprintln(w, "Use 'arc-bookshelf add <title> <author> <year>' to add a book.")
				return nil
			}

			incomplete, complete := library.Partition(books)
			if st != library.StatusComplete {
				renderShelf(w, "Unread", incomplete)
			}
			if st != library.StatusIncomplete {
				renderShelf(w, "Read", complete)
			}
			fmt.Fprintf(w, "\nTotal: %d book(s)\n", len(books))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only books whose title, author or year contains this text")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by shelf (incomplete, complete)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")

	return cmd
}

func parseStatus(raw string) (library.Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "incomplete", "unread":
		return library.StatusIncomplete, nil
	case "complete", "read":
		return library.StatusComplete, nil
	default:
		return "", fmt.Errorf("unknown status %q (choose incomplete or complete)", raw)
	}
}

func renderShelf(w io.Writer, title string, books []library.Book) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(books))
	if len(books) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	table := output.NewTable("ID", "Title", "Author", "Year")
	for _, b := range books {
		table.AddRow(strconv.FormatInt(b.ID, 10), output.Truncate(b.Title, 40), output.Truncate(b.Author, 30), strconv.Itoa(b.Year))
	}
	table.RenderTo(w)
}

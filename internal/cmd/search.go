// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newSearchCmd(a *app) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title, author or year",
		Long: `Case-insensitive substring search over title, author and year.

Examples:
  arc-bookshelf search dune
  arc-bookshelf search 196`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := library.Filter(a.shelf.Books(), library.NormalizeQuery(query))

			if !out.Is(output.OutputTable) {
				return out.Encode(cmd.OutOrStdout(), results)
			}

			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(w, "No results for %q\n", query)
				return nil
			}

			table := output.NewTable("ID", "Title", "Author", "Year", "Shelf")
			for _, b := range results {
				table.AddRow(strconv.FormatInt(b.ID, 10), output.Truncate(b.Title, 40), output.Truncate(b.Author, 30), strconv.Itoa(b.Year), shelfName(b))
			}
			table.RenderTo(w)
			fmt.Fprintf(w, "\nFound: %d book(s)\n", len(results))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

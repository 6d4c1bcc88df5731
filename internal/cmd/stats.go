// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

// shelfStats summarizes the shelf.
type shelfStats struct {
	Books      int            `json:"books" yaml:"books"`
	Unread     int            `json:"unread" yaml:"unread"`
	Read       int            `json:"read" yaml:"read"`
	Authors    int            `json:"authors" yaml:"authors"`
	Oldest     int            `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest     int            `json:"newest,omitempty" yaml:"newest,omitempty"`
	ByDecade   map[string]int `json:"by_decade" yaml:"by_decade"`
	MemoryOnly bool           `json:"memory_only" yaml:"memory_only"`
}

func computeStats(books []library.Book) shelfStats {
	st := shelfStats{Books: len(books), ByDecade: make(map[string]int)}
	authors := make(map[string]struct{})
	for i, b := range books {
		if b.IsComplete {
			st.Read++
		} else {
			st.Unread++
		}
		authors[library.NormalizeQuery(b.Author)] = struct{}{}
		if i == 0 || b.Year < st.Oldest {
			st.Oldest = b.Year
		}
		if i == 0 || b.Year > st.Newest {
			st.Newest = b.Year
		}
		st.ByDecade[fmt.Sprintf("%ds", b.Year/10*10)]++
	}
	st.Authors = len(authors)
	return st
}

func newStatsCmd(a *app) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show shelf statistics",
		Long:  `Display statistics about your shelf: book counts per shelf, authors, years.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			st := computeStats(a.shelf.Books())
			st.MemoryOnly = a.shelf.MemoryOnly()

			if !out.Is(output.OutputTable) {
				return out.Encode(cmd.OutOrStdout(), st)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Bookshelf Statistics\n")
			fmt.Fprintf(w, "====================\n\n")
			fmt.Fprintf(w, "Books:    %d\n", st.Books)
			fmt.Fprintf(w, "Unread:   %d\n", st.Unread)
			fmt.Fprintf(w, "Read:     %d\n", st.Read)
			fmt.Fprintf(w, "Authors:  %d\n", st.Authors)
			if st.Books > 0 {
				fmt.Fprintf(w, "Years:    %d - %d\n", st.Oldest, st.Newest)
				fmt.Fprintln(w, "By decade:")
				decades := make([]string, 0, len(st.ByDecade))
				for d := range st.ByDecade {
					decades = append(decades, d)
				}
				sort.Strings(decades)
				for _, d := range decades {
					fmt.Fprintf(w, "  %s: %d\n", d, st.ByDecade[d])
				}
			}
			if st.MemoryOnly {
				fmt.Fprintln(w, "\nStorage unavailable: running in memory only.")
			}
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

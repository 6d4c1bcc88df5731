// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string // "json", "yaml", "markdown", "bibtex", "ris"
		output string // file path or "-" for stdout
		query  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the shelf to various formats",
		Long: `Export your shelf to JSON, YAML, Markdown, BibTeX or RIS.

The JSON export uses the same record layout as the stored shelf, so it can
be read back with 'arc-bookshelf import'.

Examples:
  arc-bookshelf export > shelf.json
  arc-bookshelf export -f markdown -o shelf.md
  arc-bookshelf export -f bibtex --status complete`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			books := a.shelf.List(&library.ListOptions{
				Query:  library.NormalizeQuery(query),
				Status: st,
			})

			outBytes, err := exportBooks(format, books, a.now())
			if err != nil {
				return err
			}

			if output == "-" || output == "" {
				_, err := cmd.OutOrStdout().Write(outBytes)
				return err
			}
			if err := os.WriteFile(output, outBytes, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d book(s) to %s\n", len(books), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml, markdown, bibtex, ris")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only books matching this search")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by shelf (incomplete, complete)")

	return cmd
}

func exportBooks(format string, books []library.Book, now time.Time) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case "json":
		out, err = exportJSON(books)
	case "yaml", "yml":
		out, err = yaml.Marshal(books)
	case "markdown", "md":
		out = exportMarkdown(books, now)
	case "bibtex":
		out = exportBibTeX(books)
	case "ris":
		out = exportRIS(books)
	default:
		return nil, fmt.Errorf("unsupported format: %s (choose json, yaml, markdown, bibtex, ris)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return out, nil
}

func exportJSON(books []library.Book) ([]byte, error) {
	if books == nil {
		books = []library.Book{}
	}
	out, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// exportMarkdown writes one checklist per shelf.
func exportMarkdown(books []library.Book, now time.Time) []byte {
	var buf bytes.Buffer

	incomplete, complete := library.Partition(books)

	buf.WriteString("# Bookshelf\n\n")
	buf.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	buf.WriteString(fmt.Sprintf("Total books: %d\n\n", len(books)))

	for _, shelf := range []struct {
		title string
		books []library.Book
	}{
		{"Unread", incomplete},
		{"Read", complete},
	} {
		buf.WriteString(fmt.Sprintf("## %s (%d)\n\n", shelf.title, len(shelf.books)))
		for _, b := range shelf.books {
			mark := " "
			if b.IsComplete {
				mark = "x"
			}
			buf.WriteString(fmt.Sprintf("- [%s] **%s** by %s (%d)\n", mark, b.Title, b.Author, b.Year))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// exportBibTeX writes one @book entry per book.
func exportBibTeX(books []library.Book) []byte {
	var buf bytes.Buffer

	for _, b := range books {
		key := "book"
		if parts := strings.Fields(b.Author); len(parts) > 0 {
			key = strings.ToLower(parts[len(parts)-1])
		}
		key = fmt.Sprintf("%s%d", key, b.Year)

		buf.WriteString(fmt.Sprintf("@book{%s,\n", key))
		buf.WriteString(fmt.Sprintf("  title = {%s},\n", escapeBibTeX(b.Title)))
		buf.WriteString(fmt.Sprintf("  author = {%s},\n", escapeBibTeX(b.Author)))
		buf.WriteString(fmt.Sprintf("  year = {%d}\n", b.Year))
		buf.WriteString("}\n\n")
	}

	return buf.Bytes()
}

// escapeBibTeX escapes special characters for BibTeX.
func escapeBibTeX(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// exportRIS converts books to RIS records.
func exportRIS(books []library.Book) []byte {
	var buf bytes.Buffer

	for _, b := range books {
		buf.WriteString("TY  - BOOK\n")
		buf.WriteString(fmt.Sprintf("TI  - %s\n", b.Title))
		buf.WriteString(fmt.Sprintf("AU  - %s\n", b.Author))
		buf.WriteString(fmt.Sprintf("PY  - %d\n", b.Year))
		if b.IsComplete {
			buf.WriteString("KW  - read\n")
		}
		buf.WriteString("ER  - \n\n")
	}

	return buf.Bytes()
}

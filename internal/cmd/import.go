// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import books from a JSON or YAML export",
		Long: `Import books from a file written by 'arc-bookshelf export'.

JSON and YAML (.yaml, .yml) files are supported. Every imported book gets a
new id. Books whose title, author and year already exist on the shelf are
skipped.

Examples:
  arc-bookshelf import shelf.json
  arc-bookshelf import ~/backup/shelf.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importPath := args[0]

			// Expand ~ to home directory
			if strings.HasPrefix(importPath, "~") {
				home, _ := os.UserHomeDir()
				importPath = filepath.Join(home, importPath[1:])
			}

			books, err := readImportFile(importPath)
			if err != nil {
				return err
			}

			seen := make(map[string]bool)
			for _, b := range a.shelf.Books() {
				seen[importKey(b)] = true
			}

			w := cmd.OutOrStdout()
			imported, skipped := 0, 0
			for _, b := range books {
				if seen[importKey(b)] {
					fmt.Fprintf(w, "Skipped (already on shelf): %s\n", b.Title)
					skipped++
					continue
				}
				if dryRun {
					fmt.Fprintf(w, "Would import: %s by %s (%d)\n", b.Title, b.Author, b.Year)
					imported++
					continue
				}

				form := library.CreateForm{
					Title:      b.Title,
					Author:     b.Author,
					Year:       strconv.Itoa(b.Year),
					IsComplete: b.IsComplete,
				}
				added, err := form.Submit(a.shelf, a.now())
				if err != nil {
					fmt.Fprintf(w, "Skipped (%v): %s\n", err, b.Title)
					skipped++
					continue
				}
				seen[importKey(added)] = true
				imported++
			}

			a.warnMemoryOnly(cmd)
			fmt.Fprintf(w, "\nImported: %d, Skipped: %d\n", imported, skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without changing the shelf")
	return cmd
}

func readImportFile(path string) ([]library.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var books []library.Book
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &books)
	default:
		err = json.Unmarshal(data, &books)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return books, nil
}

func importKey(b library.Book) string {
	return library.NormalizeQuery(b.Title) + "\x00" + library.NormalizeQuery(b.Author) + "\x00" + strconv.Itoa(b.Year)
}

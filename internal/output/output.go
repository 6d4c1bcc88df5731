// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputFormat names a rendering.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// OutputOptions is bound to a command's --output flag.
type OutputOptions struct {
	raw    string
	format OutputFormat
}

// AddOutputFlags registers --output/-o on cmd with def as the default.
func (o *OutputOptions) AddOutputFlags(cmd *cobra.Command, def OutputFormat) {
	cmd.Flags().StringVarP(&o.raw, "output", "o", string(def), "Output format: table, json, yaml")
}

// Resolve validates the flag value. Call it at the top of RunE.
func (o *OutputOptions) Resolve() error {
	switch f := OutputFormat(strings.ToLower(o.raw)); f {
	case OutputTable, OutputJSON, OutputYAML:
		o.format = f
		return nil
	case "":
		o.format = OutputTable
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (choose table, json, yaml)", o.raw)
	}
}

// Is reports whether the resolved format is f.
func (o *OutputOptions) Is(f OutputFormat) bool {
	return o.format == f
}

// Encode writes v as JSON or YAML depending on the resolved format.
func (o *OutputOptions) Encode(w io.Writer, v any) error {
	if o.Is(OutputYAML) {
		return YAMLTo(w, v)
	}
	return JSONTo(w, v)
}

// JSON writes v to stdout as indented JSON.
func JSON(v any) error {
	return JSONTo(os.Stdout, v)
}

// JSONTo writes v to w as indented JSON.
func JSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLTo writes v to w as YAML.
func YAMLTo(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table collects rows and renders them with a rounded border.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable starts a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return tbl.String()
}

// Render writes the table to stdout.
func (t *Table) Render() {
	t.RenderTo(os.Stdout)
}

// RenderTo writes the table to w.
func (t *Table) RenderTo(w io.Writer) {
	fmt.Fprintln(w, t.String())
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

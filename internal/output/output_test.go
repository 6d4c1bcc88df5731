// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputOptionsResolve(t *testing.T) {
	var o OutputOptions
	cmd := &cobra.Command{Use: "x"}
	o.AddOutputFlags(cmd, OutputTable)

	require.NoError(t, o.Resolve())
	assert.True(t, o.Is(OutputTable))

	require.NoError(t, cmd.Flags().Set("output", "YAML"))
	require.NoError(t, o.Resolve())
	assert.True(t, o.Is(OutputYAML))

	require.NoError(t, cmd.Flags().Set("output", "xml"))
	assert.Error(t, o.Resolve())
}

func TestEncode(t *testing.T) {
	v := map[string]int{"books": 2}

	var o OutputOptions
	o.raw = "json"
	require.NoError(t, o.Resolve())
	var buf bytes.Buffer
	require.NoError(t, o.Encode(&buf, v))
	assert.JSONEq(t, `{"books":2}`, buf.String())

	o.raw = "yaml"
	require.NoError(t, o.Resolve())
	buf.Reset()
	require.NoError(t, o.Encode(&buf, v))
	assert.Equal(t, "books: 2\n", buf.String())
}

func TestTableRender(t *testing.T) {
	tbl := NewTable("ID", "Title")
	tbl.AddRow("1", "Dune")
	tbl.AddRow("2", "Emma")

	var buf bytes.Buffer
	tbl.RenderTo(&buf)
	out := buf.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Emma")
	assert.Equal(t, 2, tbl.Len())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Dune", Truncate("Dune", 10))
	assert.Equal(t, "The Left...", Truncate("The Left Hand of Darkness", 11))
	assert.Equal(t, "Ab", Truncate("Abc", 2))
}

package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

func exportGrid() table.Grid {
	return table.FromRaw(table.RawTable{Rows: []table.RawRow{
		{table.Cell("Name"), table.Cell("")},
		{table.Cell("Ann"), table.Cell("34")},
		{table.Cell("Bob, Jr."), table.Cell("line\nbreak")},
	}})
}

func TestGridCSV(t *testing.T) {
	data, err := GridCSV(exportGrid())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)

	// Header carries display titles, including the synthesized one.
	assert.Equal(t, []string{"Name", "Column_2"}, records[0])
	assert.Equal(t, []string{"Ann", "34"}, records[1])

	// Commas and newlines survive the round trip via quoting.
	assert.Equal(t, []string{"Bob, Jr.", "line\nbreak"}, records[2])
}

func TestGridCSVEmptyGrid(t *testing.T) {
	g := table.Grid{Columns: []table.ColumnSpec{
		{Name: "A", Title: "First"},
		{Name: "B", Title: "Second"},
	}}

	data, err := GridCSV(g)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Header row only.
	require.Len(t, records, 1)
	assert.Equal(t, []string{"First", "Second"}, records[0])
}

func TestCSVFileName(t *testing.T) {
	assert.Equal(t, "split_table_1.csv", CSVFileName(1, 1))
	assert.Equal(t, "split_table_part_1.csv", CSVFileName(1, 3))
	assert.Equal(t, "split_table_part_3.csv", CSVFileName(3, 3))
}

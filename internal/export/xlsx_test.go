package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

func TestGridsXLSX(t *testing.T) {
	half1, err := table.SelectRange(exportGrid(), 0, 0)
	require.NoError(t, err)
	half2, err := table.SelectRange(exportGrid(), 1, 1)
	require.NoError(t, err)

	data, err := GridsXLSX([]table.Grid{half1, half2})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Part 1", "Part 2"}, f.GetSheetList())

	rows1, err := f.GetRows("Part 1")
	require.NoError(t, err)
	require.Len(t, rows1, 2)
	assert.Equal(t, []string{"Name", "Column_2"}, rows1[0])
	assert.Equal(t, []string{"Ann", "34"}, rows1[1])

	rows2, err := f.GetRows("Part 2")
	require.NoError(t, err)
	require.Len(t, rows2, 2)
	assert.Equal(t, "Bob, Jr.", rows2[1][0])
}

func TestGridsXLSXEmptyPart(t *testing.T) {
	empty := table.Grid{Columns: []table.ColumnSpec{{Name: "A", Title: "Alpha"}}}

	data, err := GridsXLSX([]table.Grid{empty, exportGrid()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Empty parts keep their sheet so numbering matches the CSV exports.
	require.Equal(t, []string{"Part 1", "Part 2"}, f.GetSheetList())

	rows, err := f.GetRows("Part 1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Alpha"}, rows[0])
}

func TestGridsXLSXNoParts(t *testing.T) {
	data, err := GridsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// An empty workbook still has its default sheet.
	assert.Len(t, f.GetSheetList(), 1)
}

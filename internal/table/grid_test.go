package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGridRaggedRows(t *testing.T) {
	raw := RawTable{Rows: []RawRow{
		{Cell("Name"), Cell("Age"), Cell("City")},
		{Cell("Ann"), Cell("34")},
		{Cell("Bob"), Cell("41"), Cell("Oslo"), Cell("extra")},
		{NullCell(), Cell("19"), Cell("Kyiv")},
	}}

	grid := FromRaw(raw)

	require.Equal(t, 3, grid.RowCount())
	require.Equal(t, 3, grid.ColumnCount())

	// Short row padded with empty strings.
	assert.Equal(t, "Ann", grid.Cell(0, "Name"))
	assert.Equal(t, "", grid.Cell(0, "City"))

	// Excess cell dropped, no fourth column appears.
	assert.False(t, grid.HasColumn("Column_4"))
	assert.Equal(t, "Oslo", grid.Cell(1, "City"))

	// Null cell becomes empty string, never missing.
	assert.Equal(t, "", grid.Cell(2, "Name"))
	_, present := grid.Rows[2]["Name"]
	assert.True(t, present)
}

func TestBuildGridHeaderOnly(t *testing.T) {
	raw := RawTable{Rows: []RawRow{
		{Cell("A"), Cell("B")},
	}}

	grid := FromRaw(raw)

	assert.Equal(t, 0, grid.RowCount())
	assert.Equal(t, 2, grid.ColumnCount())
	assert.True(t, grid.IsEmpty())
}

func TestBuildGridEmptyTable(t *testing.T) {
	grid := FromRaw(RawTable{})

	assert.Equal(t, 0, grid.RowCount())
	assert.Equal(t, 0, grid.ColumnCount())
	assert.True(t, grid.IsEmpty())
}

func TestGridClone(t *testing.T) {
	raw := RawTable{Rows: []RawRow{
		{Cell("K")},
		{Cell("v1")},
	}}
	grid := FromRaw(raw)

	clone := grid.Clone()
	clone.Rows[0]["K"] = "changed"
	clone.Columns[0].Name = "renamed"

	assert.Equal(t, "v1", grid.Cell(0, "K"))
	assert.Equal(t, "K", grid.Columns[0].Name)
}

func TestGridCellOutOfRange(t *testing.T) {
	grid := FromRaw(RawTable{Rows: []RawRow{
		{Cell("A")},
		{Cell("x")},
	}})

	assert.Equal(t, "", grid.Cell(-1, "A"))
	assert.Equal(t, "", grid.Cell(5, "A"))
	assert.Equal(t, "", grid.Cell(0, "nope"))
}

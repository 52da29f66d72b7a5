package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

func sampleGrid() table.Grid {
	return table.FromRaw(table.RawTable{Rows: []table.RawRow{
		{table.Cell("Name"), table.Cell("")},
		{table.Cell("Ann"), table.Cell("34")},
		{table.Cell("Bob"), table.Cell("41")},
	}})
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument([]table.Grid{sampleGrid()})

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "page1", doc.Pages[0].Name)
	require.Len(t, doc.Pages[0].Elements, 1)

	el := doc.Pages[0].Elements[0]
	assert.Equal(t, "matrixdropdown", el.Type)
	assert.Equal(t, "Table 1", el.Name)
	assert.Equal(t, "Details for Table 1", el.Title)

	require.Len(t, el.Columns, 2)
	assert.Equal(t, "Name", el.Columns[0].Name)
	assert.Equal(t, "Name", el.Columns[0].Title)
	assert.Equal(t, "text", el.Columns[0].CellType)
	assert.Equal(t, "Column_2", el.Columns[1].Name)

	assert.Equal(t, []string{"Row 1", "Row 2"}, el.Rows)
	assert.Equal(t, "Ann", el.DefaultValue["Row 1"]["Name"])
	assert.Equal(t, "41", el.DefaultValue["Row 2"]["Column_2"])
}

func TestBuildDocumentSkipsEmptyGrids(t *testing.T) {
	empty := table.Grid{Columns: []table.ColumnSpec{{Name: "A", Title: "A"}}}

	doc := BuildDocument([]table.Grid{empty, sampleGrid(), {}})

	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Elements, 1)

	// Element numbering follows the grid's position in the input, so a
	// skipped first grid does not renumber the survivors.
	assert.Equal(t, "Table 2", doc.Pages[0].Elements[0].Name)
}

func TestBuildDocumentAllEmpty(t *testing.T) {
	doc := BuildDocument(nil)

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "page1", doc.Pages[0].Name)
	assert.Empty(t, doc.Pages[0].Elements)
}

func TestBuildDocumentMultipleTables(t *testing.T) {
	doc := BuildDocument([]table.Grid{sampleGrid(), sampleGrid(), sampleGrid()})

	require.Len(t, doc.Pages[0].Elements, 3)
	assert.Equal(t, "Table 1", doc.Pages[0].Elements[0].Name)
	assert.Equal(t, "Table 2", doc.Pages[0].Elements[1].Name)
	assert.Equal(t, "Table 3", doc.Pages[0].Elements[2].Name)
}

func TestMarshalRoundTrip(t *testing.T) {
	doc := BuildDocument([]table.Grid{sampleGrid()})

	data, err := Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, decoded)
}

func TestMarshalShape(t *testing.T) {
	data, err := Marshal(BuildDocument([]table.Grid{sampleGrid()}))
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))

	pages, ok := generic["pages"].([]any)
	require.True(t, ok, "pages must be a JSON array")
	require.Len(t, pages, 1)

	page, ok := pages[0].(map[string]any)
	require.True(t, ok)

	elements, ok := page["elements"].([]any)
	require.True(t, ok, "elements must be a JSON array")

	el, ok := elements[0].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"type", "name", "title", "defaultValue", "columns", "rows"} {
		assert.Contains(t, el, key)
	}
}

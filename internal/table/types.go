// Package table holds the tabular data model shared by the extraction,
// editing and serialization stages: raw extractor output (RawTable),
// the normalized rectangular Grid, and the operations that transform one
// into the other.
package table

// RawCell is a single extracted value. Valid is false when the extractor
// produced no value for that position.
type RawCell struct {
	Text  string `json:"text"`
	Valid bool   `json:"valid"`
}

// Cell returns a valid RawCell holding the given text.
func Cell(text string) RawCell {
	return RawCell{Text: text, Valid: true}
}

// NullCell returns an absent RawCell.
func NullCell() RawCell {
	return RawCell{}
}

// RawRow is an ordered sequence of possibly-absent cells.
type RawRow []RawCell

// RawTable is unprocessed extractor output. Row 0 is conventionally the
// header row. Rows need not have equal length; BuildGrid tolerates ragged
// input.
type RawTable struct {
	Rows []RawRow `json:"rows"`
}

// HeaderRow returns the first row, or nil for an empty table.
func (t RawTable) HeaderRow() RawRow {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns every row after the header row.
func (t RawTable) DataRows() []RawRow {
	if len(t.Rows) <= 1 {
		return nil
	}
	return t.Rows[1:]
}

// ColumnSpec identifies a column within a Grid. Name is unique within the
// table and never empty; Title is the original header text, or the
// synthesized name when the header was blank.
type ColumnSpec struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Row maps column names to cell values. Values are never missing for a
// column the Grid declares; absent extractor cells become empty strings.
type Row map[string]string

// Grid is a rectangular table: an ordered column set plus ordered rows
// keyed by column name.
type Grid struct {
	Columns []ColumnSpec `json:"columns"`
	Rows    []Row        `json:"rows"`
}

// RowCount returns the number of data rows.
func (g Grid) RowCount() int {
	return len(g.Rows)
}

// ColumnCount returns the number of columns.
func (g Grid) ColumnCount() int {
	return len(g.Columns)
}

// IsEmpty reports whether the grid carries no data. A grid with columns
// but zero rows is empty, as is one with no columns at all. Downstream
// stages skip empty grids instead of failing.
func (g Grid) IsEmpty() bool {
	return len(g.Rows) == 0 || len(g.Columns) == 0
}

// Cell returns the value at the given row index and column name, or the
// empty string if the row does not carry the column.
func (g Grid) Cell(row int, column string) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	return g.Rows[row][column]
}

// HasColumn reports whether the grid declares a column with the given name.
func (g Grid) HasColumn(name string) bool {
	for _, c := range g.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the grid. Editing operations return
// copies so that a session can re-derive downstream state without
// mutating its source grid.
func (g Grid) Clone() Grid {
	out := Grid{
		Columns: make([]ColumnSpec, len(g.Columns)),
		Rows:    make([]Row, len(g.Rows)),
	}
	copy(out.Columns, g.Columns)
	for i, row := range g.Rows {
		out.Rows[i] = make(Row, len(row))
		for k, v := range row {
			out.Rows[i][k] = v
		}
	}
	return out
}

package table

import "fmt"

// InvalidRangeError reports a row range that violates SelectRange's
// contract. The orchestrator clamps user input before calling, so seeing
// this error indicates a caller bug, not bad user input.
type InvalidRangeError struct {
	Start    int
	End      int
	RowCount int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid row range [%d, %d] for grid with %d rows", e.Start, e.End, e.RowCount)
}

// UnknownColumnError reports an edit addressed to a column the grid does
// not declare. Like InvalidRangeError it marks a caller bug: column names
// are fixed at Grid construction and never re-validated downstream.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// CellEdit addresses a single cell by row index and column name. Row may
// point one or more rows past the current end of the grid, in which case
// the grid grows to fit.
type CellEdit struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// SelectRange returns a new Grid containing rows [start, end] inclusive
// with the same columns. On an empty grid the operation is a no-op and
// returns the empty grid regardless of the requested range. Otherwise the
// range must satisfy 0 <= start <= end <= RowCount-1 or an
// *InvalidRangeError is returned.
func SelectRange(g Grid, start, end int) (Grid, error) {
	if g.RowCount() == 0 {
		return g.Clone(), nil
	}

	if start < 0 || end >= g.RowCount() || start > end {
		return Grid{}, &InvalidRangeError{Start: start, End: end, RowCount: g.RowCount()}
	}

	out := Grid{
		Columns: make([]ColumnSpec, len(g.Columns)),
		Rows:    make([]Row, 0, end-start+1),
	}
	copy(out.Columns, g.Columns)

	for i := start; i <= end; i++ {
		row := make(Row, len(g.Rows[i]))
		for k, v := range g.Rows[i] {
			row[k] = v
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// ApplyEdits returns a new Grid with the given cell edits applied. Edits
// addressing rows beyond the current row count extend the grid; new rows
// start out with every declared column set to the empty string. An edit
// naming an undeclared column fails with *UnknownColumnError and leaves
// no partial result.
func ApplyEdits(g Grid, edits []CellEdit) (Grid, error) {
	for _, e := range edits {
		if !g.HasColumn(e.Column) {
			return Grid{}, &UnknownColumnError{Column: e.Column}
		}
		if e.Row < 0 {
			return Grid{}, &InvalidRangeError{Start: e.Row, End: e.Row, RowCount: g.RowCount()}
		}
	}

	out := g.Clone()

	for _, e := range edits {
		for e.Row >= len(out.Rows) {
			row := make(Row, len(out.Columns))
			for _, c := range out.Columns {
				row[c.Name] = ""
			}
			out.Rows = append(out.Rows, row)
		}
		out.Rows[e.Row][e.Column] = e.Value
	}

	return out, nil
}

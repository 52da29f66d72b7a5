package table

// BuildGrid builds a rectangular Grid from the data rows of a raw table
// using an already-normalized column set. Cells align by position, not by
// label: rows shorter than the column set are padded with empty strings
// and excess cells are dropped. Absent cells become empty strings, so no
// Grid value is ever null.
//
// A table with no data rows yields a Grid with zero rows and the columns
// still populated. Zero columns and zero rows yield an empty Grid, which
// downstream stages treat as "no data" rather than an error.
func BuildGrid(raw RawTable, columns []ColumnSpec) Grid {
	dataRows := raw.DataRows()

	grid := Grid{
		Columns: columns,
		Rows:    make([]Row, 0, len(dataRows)),
	}

	for _, rawRow := range dataRows {
		row := make(Row, len(columns))
		for p, col := range columns {
			value := ""
			if p < len(rawRow) && rawRow[p].Valid {
				value = rawRow[p].Text
			}
			row[col.Name] = value
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// FromRaw normalizes the header row of a raw table and builds the Grid in
// one step.
func FromRaw(raw RawTable) Grid {
	return BuildGrid(raw, NormalizeHeaders(raw.HeaderRow()))
}

package table

import (
	"fmt"
	"strings"
)

// NormalizeHeaders converts a raw header row into a sequence of unique,
// non-empty column specs, preserving position. Blank or absent headers
// become "Column_<position>" (1-indexed); duplicates get the smallest
// free "_<k>" suffix checked against the running set of used names, so
// repeated collisions stay unique.
//
// The operation is total: it never fails, and the same input always
// produces the same output.
func NormalizeHeaders(header RawRow) []ColumnSpec {
	specs := make([]ColumnSpec, 0, len(header))
	used := make(map[string]bool, len(header))

	for i, cell := range header {
		original := ""
		if cell.Valid {
			original = strings.TrimSpace(cell.Text)
		}

		candidate := original
		if candidate == "" {
			candidate = fmt.Sprintf("Column_%d", i+1)
		}

		name := candidate
		for k := 1; used[name]; k++ {
			name = fmt.Sprintf("%s_%d", candidate, k)
		}
		used[name] = true

		title := original
		if title == "" {
			title = name
		}

		specs = append(specs, ColumnSpec{Name: name, Title: title})
	}

	return specs
}

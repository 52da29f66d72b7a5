// Package export produces the downloadable artifacts of a conversion
// session: per-part CSV files, an XLSX workbook of all parts, and the
// SurveyJS JSON document.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// CSVContentType is the MIME type reported for CSV downloads.
const CSVContentType = "text/csv"

// GridCSV renders a grid as comma-separated bytes. The header row carries
// the column display titles; data rows follow in grid order. An empty
// grid still produces its header row so the file shape stays predictable.
func GridCSV(g table.Grid) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, g.ColumnCount())
	for _, c := range g.Columns {
		header = append(header, c.Title)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, g.ColumnCount())
	for _, row := range g.Rows {
		for i, c := range g.Columns {
			record[i] = row[c.Name]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// CSVFileName returns the download name for a split part. Parts are
// 1-indexed; a single-part export drops the "part" infix.
func CSVFileName(part, totalParts int) string {
	if totalParts <= 1 {
		return fmt.Sprintf("split_table_%d.csv", part)
	}
	return fmt.Sprintf("split_table_part_%d.csv", part)
}

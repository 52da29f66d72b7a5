package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// XLSXContentType is the MIME type reported for workbook downloads.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// XLSXFileName is the download name for the combined workbook.
const XLSXFileName = "split_tables.xlsx"

// GridsXLSX renders the split parts as a single workbook with one sheet
// per part ("Part 1", "Part 2", ...). Each sheet carries the display
// titles as its first row. Empty grids still get their sheet and header
// so part numbering stays aligned with the CSV exports.
func GridsXLSX(grids []table.Grid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for idx, g := range grids {
		sheet := fmt.Sprintf("Part %d", idx+1)
		if idx == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		if err := writeSheet(f, sheet, g); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, g table.Grid) error {
	header := make([]interface{}, 0, g.ColumnCount())
	for _, c := range g.Columns {
		header = append(header, c.Title)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range g.Rows {
		record := make([]interface{}, 0, g.ColumnCount())
		for _, c := range g.Columns {
			record = append(record, row[c.Name])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return nil
}

// Package survey serializes grids into the JSON document shape consumed
// by the SurveyJS form renderer: one matrixdropdown element per table,
// with column definitions, synthetic row names and a default-value map
// carrying the cell contents.
package survey

import (
	"encoding/json"
	"fmt"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// ElementType is the only SurveyJS question type this converter emits.
const ElementType = "matrixdropdown"

// CellType is the cell editor requested for every generated column.
const CellType = "text"

// Column describes a matrixdropdown column.
type Column struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	CellType string `json:"cellType"`
}

// Element is a single matrixdropdown question holding one table.
type Element struct {
	Type         string                       `json:"type"`
	Name         string                       `json:"name"`
	Title        string                       `json:"title"`
	DefaultValue map[string]map[string]string `json:"defaultValue"`
	Columns      []Column                     `json:"columns"`
	Rows         []string                     `json:"rows"`
}

// Page groups elements; this converter always emits a single page named
// "page1".
type Page struct {
	Name     string    `json:"name"`
	Elements []Element `json:"elements"`
}

// Document is the root SurveyJS schema object.
type Document struct {
	Pages []Page `json:"pages"`
}

// BuildDocument converts an ordered sequence of grids into a SurveyJS
// document. Empty grids (zero rows or zero columns) are skipped without
// an element and without error, keeping the document valid for the
// remaining tables. When every grid is empty the document still carries a
// well-formed pages array with an empty element list.
func BuildDocument(grids []table.Grid) Document {
	elements := make([]Element, 0, len(grids))

	for idx, g := range grids {
		if g.IsEmpty() {
			continue
		}
		elements = append(elements, buildElement(g, idx+1))
	}

	return Document{
		Pages: []Page{{Name: "page1", Elements: elements}},
	}
}

// buildElement converts one non-empty grid. Naming is 1-indexed by the
// grid's position in the input sequence.
func buildElement(g table.Grid, position int) Element {
	columns := make([]Column, 0, g.ColumnCount())
	for _, c := range g.Columns {
		columns = append(columns, Column{Name: c.Name, Title: c.Title, CellType: CellType})
	}

	rows := make([]string, 0, g.RowCount())
	defaults := make(map[string]map[string]string, g.RowCount())
	for i, row := range g.Rows {
		rowName := fmt.Sprintf("Row %d", i+1)
		rows = append(rows, rowName)

		values := make(map[string]string, len(g.Columns))
		for _, c := range g.Columns {
			values[c.Name] = row[c.Name]
		}
		defaults[rowName] = values
	}

	return Element{
		Type:         ElementType,
		Name:         fmt.Sprintf("Table %d", position),
		Title:        fmt.Sprintf("Details for Table %d", position),
		DefaultValue: defaults,
		Columns:      columns,
		Rows:         rows,
	}
}

// Marshal renders the document as pretty-printed UTF-8 JSON with 2-space
// indentation, the form the SurveyJS creator accepts for import.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal survey document: %w", err)
	}
	return data, nil
}

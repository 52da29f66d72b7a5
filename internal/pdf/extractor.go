package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// ExtractionError represents a failure of the table-recovery stage. The
// orchestrator surfaces it as a non-fatal warning: the document is
// skipped but the session stays usable.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("table extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor recovers tabular data from the positioned text of a PDF page.
// Words are clustered into visual rows by Y coordinate, merged into cell
// segments by horizontal gap, and aligned into columns by clustering the
// segment start positions across rows.
type Extractor struct {
	// rowTolerance is the max Y distance (points) between words that
	// share a visual row.
	rowTolerance float64

	// cellGap is the min horizontal whitespace (points) separating two
	// cells; smaller gaps join words into one cell.
	cellGap float64

	// alignTolerance is the max X distance (points) between segment
	// starts considered the same column.
	alignTolerance float64

	// minTableRows and minTableColumns gate what counts as a table;
	// isolated multi-word lines are prose, not data.
	minTableRows    int
	minTableColumns int
}

// NewExtractor creates a table extractor with default geometry settings.
// Size and format validation happens in the service before extraction, so
// the extractor only carries geometry parameters.
func NewExtractor() *Extractor {
	return &Extractor{
		rowTolerance:    2.0,
		cellGap:         8.0,
		alignTolerance:  6.0,
		minTableRows:    2,
		minTableColumns: 2,
	}
}

// ExtractTables recovers all tables from the requested pages of a PDF
// file. A document with no detectable tables yields an empty Tables slice
// and no error; failures to open or parse the document yield an
// *ExtractionError.
func (e *Extractor) ExtractTables(req ExtractTablesRequest) (*ExtractTablesResult, error) {
	if req.Path == "" {
		return nil, &ExtractionError{Path: req.Path, Err: fmt.Errorf("path cannot be empty")}
	}

	f, r, err := pdf.Open(req.Path)
	if err != nil {
		return nil, &ExtractionError{Path: req.Path, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()

	result := &ExtractTablesResult{
		Path:  req.Path,
		Pages: r.NumPage(),
	}

	wanted := pageFilter(req.Pages)

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		if wanted != nil && !wanted[pageNum] {
			continue
		}

		tables, warn := e.extractPageTables(r, pageNum)
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
		result.Tables = append(result.Tables, tables...)
	}

	return result, nil
}

// extractPageTables recovers the tables of a single page. Parse failures
// on one page degrade to a warning so remaining pages still contribute.
func (e *Extractor) extractPageTables(r *pdf.Reader, pageNum int) (tables []table.RawTable, warning string) {
	defer func() {
		// The content stream interpreter panics on some malformed pages.
		if rec := recover(); rec != nil {
			tables = nil
			warning = fmt.Sprintf("page %d: content parsing failed: %v", pageNum, rec)
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil, ""
	}

	rows := e.clusterRows(page.Content().Text)
	blocks := e.tableBlocks(rows)

	for _, block := range blocks {
		if t, ok := e.buildRawTable(block); ok {
			tables = append(tables, t)
		}
	}

	return tables, ""
}

// textRow is one visual line of the page: cell segments ordered left to
// right.
type textRow struct {
	y        float64
	segments []segment
}

// segment is a run of words close enough to form a single cell.
type segment struct {
	x0, x1 float64
	text   string
}

// clusterRows groups positioned words into visual rows by Y tolerance and
// merges words within each row into cell segments. Rows come back top to
// bottom, segments left to right.
func (e *Extractor) clusterRows(texts []pdf.Text) []textRow {
	words := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		words = append(words, t)
	}
	if len(words) == 0 {
		return nil
	}

	// Top to bottom (PDF Y grows upward), then left to right.
	sort.Slice(words, func(i, j int) bool {
		if words[i].Y != words[j].Y {
			return words[i].Y > words[j].Y
		}
		return words[i].X < words[j].X
	})

	var rows []textRow
	var current []pdf.Text
	currentY := words[0].Y

	flush := func() {
		if len(current) > 0 {
			rows = append(rows, textRow{y: currentY, segments: e.mergeSegments(current)})
		}
		current = current[:0]
	}

	for _, w := range words {
		if currentY-w.Y > e.rowTolerance {
			flush()
			currentY = w.Y
		}
		current = append(current, w)
	}
	flush()

	return rows
}

// mergeSegments joins adjacent words into cells when the horizontal gap
// between them is below the cell gap. Words must be sorted by X.
func (e *Extractor) mergeSegments(words []pdf.Text) []segment {
	sort.Slice(words, func(i, j int) bool { return words[i].X < words[j].X })

	var segments []segment
	for _, w := range words {
		end := w.X + w.W
		text := strings.TrimSpace(w.S)

		if n := len(segments); n > 0 && w.X-segments[n-1].x1 <= e.cellGap {
			segments[n-1].text += joinSeparator(segments[n-1].text, w.X-segments[n-1].x1) + text
			if end > segments[n-1].x1 {
				segments[n-1].x1 = end
			}
			continue
		}

		segments = append(segments, segment{x0: w.X, x1: end, text: text})
	}

	return segments
}

// joinSeparator decides how two merged words are glued together. Word
// fragments emitted without measurable space stay joined; anything else
// gets a single space.
func joinSeparator(existing string, gap float64) string {
	if existing == "" || gap < 0.5 {
		return ""
	}
	return " "
}

// tableBlocks groups consecutive multi-segment rows into candidate table
// blocks. A single-segment row (a heading or prose line) terminates the
// current block. Blocks shorter than minTableRows are discarded.
func (e *Extractor) tableBlocks(rows []textRow) [][]textRow {
	var blocks [][]textRow
	var current []textRow

	flush := func() {
		if len(current) >= e.minTableRows {
			block := make([]textRow, len(current))
			copy(block, current)
			blocks = append(blocks, block)
		}
		current = current[:0]
	}

	for _, row := range rows {
		if len(row.segments) >= e.minTableColumns {
			current = append(current, row)
			continue
		}
		flush()
	}
	flush()

	return blocks
}

// buildRawTable aligns a block's segments into columns and emits a
// RawTable whose first row is the header row. Column positions are the
// clustered start coordinates of all segments in the block (the
// cell-boundary-first approach: analyze the whole block rather than any
// single row).
func (e *Extractor) buildRawTable(block []textRow) (table.RawTable, bool) {
	columns := e.columnPositions(block)
	if len(columns) < e.minTableColumns {
		return table.RawTable{}, false
	}

	raw := table.RawTable{Rows: make([]table.RawRow, 0, len(block))}

	for _, row := range block {
		rawRow := make(table.RawRow, len(columns))
		for i := range rawRow {
			rawRow[i] = table.NullCell()
		}

		for _, seg := range row.segments {
			idx := nearestColumn(columns, seg.x0)
			if rawRow[idx].Valid {
				// Two segments landed in one column; keep reading order.
				rawRow[idx] = table.Cell(rawRow[idx].Text + " " + seg.text)
			} else {
				rawRow[idx] = table.Cell(seg.text)
			}
		}

		raw.Rows = append(raw.Rows, rawRow)
	}

	return raw, true
}

// columnPositions clusters segment start coordinates across the block
// into sorted column positions. Clusters supported by a single row are
// kept only if the block has just one data row; otherwise they are noise.
func (e *Extractor) columnPositions(block []textRow) []float64 {
	var starts []float64
	for _, row := range block {
		for _, seg := range row.segments {
			starts = append(starts, seg.x0)
		}
	}
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	type cluster struct {
		center  float64
		support int
	}

	clusters := []cluster{{center: starts[0], support: 1}}
	for _, x := range starts[1:] {
		last := &clusters[len(clusters)-1]
		if x-last.center <= e.alignTolerance {
			// Rolling mean keeps the center stable as support grows.
			last.center = (last.center*float64(last.support) + x) / float64(last.support+1)
			last.support++
			continue
		}
		clusters = append(clusters, cluster{center: x, support: 1})
	}

	minSupport := 2
	if len(block) < 3 {
		minSupport = 1
	}

	positions := make([]float64, 0, len(clusters))
	for _, c := range clusters {
		if c.support >= minSupport {
			positions = append(positions, c.center)
		}
	}

	return positions
}

// nearestColumn returns the index of the column position closest to x.
func nearestColumn(columns []float64, x float64) int {
	best := 0
	bestDist := abs(columns[0] - x)
	for i := 1; i < len(columns); i++ {
		if d := abs(columns[i] - x); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// pageFilter converts a page list into a membership set; nil means all
// pages.
func pageFilter(pages []int) map[int]bool {
	if len(pages) == 0 {
		return nil
	}
	set := make(map[int]bool, len(pages))
	for _, p := range pages {
		set[p] = true
	}
	return set
}

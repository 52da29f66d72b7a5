package pdf

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
)

// word builds a positioned text fragment the way the content stream
// interpreter emits them.
func word(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestNewExtractorDefaults(t *testing.T) {
	e := NewExtractor()

	if e.rowTolerance <= 0 || e.cellGap <= 0 || e.alignTolerance <= 0 {
		t.Errorf("geometry defaults must be positive, got %v/%v/%v",
			e.rowTolerance, e.cellGap, e.alignTolerance)
	}
	if e.minTableRows < 2 || e.minTableColumns < 2 {
		t.Errorf("table gates must require at least 2x2, got %dx%d",
			e.minTableRows, e.minTableColumns)
	}
}

func TestClusterRows(t *testing.T) {
	e := NewExtractor()

	texts := []pdf.Text{
		// Second visual row listed first; clustering must sort by Y.
		word("b1", 10, 700, 20),
		word("a1", 10, 712, 20),
		word("a2", 100, 712.5, 20), // within rowTolerance of a1
		word("b2", 100, 699, 20),   // within rowTolerance of b1
		word("  ", 50, 712, 5),     // whitespace fragments are dropped
	}

	rows := e.clusterRows(texts)

	if len(rows) != 2 {
		t.Fatalf("clusterRows() = %d rows, want 2", len(rows))
	}
	if len(rows[0].segments) != 2 || rows[0].segments[0].text != "a1" {
		t.Errorf("top row = %+v, want segments a1, a2", rows[0].segments)
	}
	if len(rows[1].segments) != 2 || rows[1].segments[0].text != "b1" {
		t.Errorf("bottom row = %+v, want segments b1, b2", rows[1].segments)
	}
}

func TestClusterRowsEmpty(t *testing.T) {
	e := NewExtractor()

	if rows := e.clusterRows(nil); rows != nil {
		t.Errorf("clusterRows(nil) = %v, want nil", rows)
	}
	if rows := e.clusterRows([]pdf.Text{word("   ", 0, 0, 5)}); rows != nil {
		t.Errorf("clusterRows(whitespace only) = %v, want nil", rows)
	}
}

func TestMergeSegments(t *testing.T) {
	e := NewExtractor()

	// "Unit" and "price" sit 3pt apart (below cellGap) and merge into
	// one cell; "Total" starts 30pt later and stays separate.
	words := []pdf.Text{
		word("Unit", 10, 700, 20),
		word("price", 33, 700, 24),
		word("Total", 87, 700, 25),
	}

	segments := e.mergeSegments(words)

	if len(segments) != 2 {
		t.Fatalf("mergeSegments() = %d segments, want 2", len(segments))
	}
	if segments[0].text != "Unit price" {
		t.Errorf("merged cell = %q, want %q", segments[0].text, "Unit price")
	}
	if segments[1].text != "Total" {
		t.Errorf("second cell = %q, want %q", segments[1].text, "Total")
	}
	if segments[0].x0 != 10 || segments[0].x1 != 57 {
		t.Errorf("merged extent = [%v, %v], want [10, 57]", segments[0].x0, segments[0].x1)
	}
}

func TestMergeSegmentsFragments(t *testing.T) {
	e := NewExtractor()

	// Fragments emitted back to back (no measurable gap) join without a
	// space: "Tot" + "al" is one word split by the writer.
	words := []pdf.Text{
		word("Tot", 10, 700, 15),
		word("al", 25, 700, 10),
	}

	segments := e.mergeSegments(words)

	if len(segments) != 1 {
		t.Fatalf("mergeSegments() = %d segments, want 1", len(segments))
	}
	if segments[0].text != "Total" {
		t.Errorf("joined fragment = %q, want %q", segments[0].text, "Total")
	}
}

func TestTableBlocks(t *testing.T) {
	e := NewExtractor()

	multi := textRow{segments: []segment{{text: "a"}, {text: "b"}}}
	single := textRow{segments: []segment{{text: "heading"}}}

	tests := []struct {
		name       string
		rows       []textRow
		wantBlocks int
	}{
		{"two tables separated by prose", []textRow{multi, multi, single, multi, multi, multi}, 2},
		{"lone multi-segment row is not a table", []textRow{single, multi, single}, 0},
		{"all prose", []textRow{single, single}, 0},
		{"single block", []textRow{multi, multi}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := e.tableBlocks(tt.rows)
			if len(blocks) != tt.wantBlocks {
				t.Errorf("tableBlocks() = %d blocks, want %d", len(blocks), tt.wantBlocks)
			}
		})
	}
}

func TestBuildRawTable(t *testing.T) {
	e := NewExtractor()

	// Three rows aligned on two columns at x=10 and x=100, with the
	// middle row missing its second cell.
	block := []textRow{
		{segments: []segment{{x0: 10, text: "Name"}, {x0: 100, text: "Qty"}}},
		{segments: []segment{{x0: 11, text: "apples"}}},
		{segments: []segment{{x0: 9, text: "pears"}, {x0: 102, text: "7"}}},
	}

	raw, ok := e.buildRawTable(block)
	if !ok {
		t.Fatal("buildRawTable() rejected a well-formed block")
	}

	if len(raw.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(raw.Rows))
	}
	header := raw.Rows[0]
	if len(header) != 2 || header[0].Text != "Name" || header[1].Text != "Qty" {
		t.Errorf("header row = %+v", header)
	}

	// The missing cell comes back as a null cell, not an empty string.
	if raw.Rows[1][1].Valid {
		t.Errorf("missing cell should be null, got %+v", raw.Rows[1][1])
	}
	if raw.Rows[2][1].Text != "7" {
		t.Errorf("aligned cell = %q, want %q", raw.Rows[2][1].Text, "7")
	}
}

func TestBuildRawTableRejectsSingleColumn(t *testing.T) {
	e := NewExtractor()

	// All segments start at the same X, so only one column position
	// survives clustering.
	block := []textRow{
		{segments: []segment{{x0: 10, text: "a"}, {x0: 12, text: "b"}}},
		{segments: []segment{{x0: 11, text: "c"}, {x0: 13, text: "d"}}},
	}

	if _, ok := e.buildRawTable(block); ok {
		t.Error("buildRawTable() should reject a block with one column position")
	}
}

func TestColumnPositionsSupportThreshold(t *testing.T) {
	e := NewExtractor()

	// Column at x~10 appears in all three rows; the stray segment at
	// x=300 appears once and must be discarded as noise.
	block := []textRow{
		{segments: []segment{{x0: 10}, {x0: 100}}},
		{segments: []segment{{x0: 11}, {x0: 101}, {x0: 300}}},
		{segments: []segment{{x0: 9}, {x0: 99}}},
	}

	positions := e.columnPositions(block)

	if len(positions) != 2 {
		t.Fatalf("columnPositions() = %v, want 2 positions", positions)
	}
	if positions[0] > 15 || positions[1] < 95 {
		t.Errorf("positions = %v, want centers near 10 and 100", positions)
	}
}

func TestNearestColumn(t *testing.T) {
	columns := []float64{10, 100, 250}

	tests := []struct {
		x    float64
		want int
	}{
		{9, 0},
		{54, 0},
		{56, 1},
		{260, 2},
	}

	for _, tt := range tests {
		if got := nearestColumn(columns, tt.x); got != tt.want {
			t.Errorf("nearestColumn(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestPageFilter(t *testing.T) {
	if pageFilter(nil) != nil {
		t.Error("pageFilter(nil) should be nil (all pages)")
	}

	set := pageFilter([]int{1, 3})
	if !set[1] || set[2] || !set[3] {
		t.Errorf("pageFilter([1,3]) = %v", set)
	}
}

func TestExtractTablesMissingFile(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractTables(ExtractTablesRequest{Path: "/nonexistent/file.pdf"})
	if err == nil {
		t.Fatal("ExtractTables on missing file should fail")
	}

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("error should be *ExtractionError, got %T", err)
	}
	if extErr.Path != "/nonexistent/file.pdf" {
		t.Errorf("error path = %q", extErr.Path)
	}
}

func TestExtractTablesEmptyPath(t *testing.T) {
	e := NewExtractor()

	if _, err := e.ExtractTables(ExtractTablesRequest{}); err == nil {
		t.Fatal("ExtractTables with empty path should fail")
	}
}

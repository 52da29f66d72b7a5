// Package session holds the per-document editing state between tool
// calls: the grids recovered from one PDF, the user's trim/edit changes,
// and the requested split boundaries. Sessions are independent of each
// other; nothing is shared between them and nothing survives the process.
package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// Session is the mutable state of one loaded document. All user-supplied
// indices are clamped here before the table operations run; those
// operations treat out-of-domain input as a caller bug, not something to
// repair.
type Session struct {
	ID        string
	Path      string
	CreatedAt time.Time

	mu sync.Mutex
	// grids is the current working state, one grid per recovered table,
	// already trimmed and edited.
	grids []table.Grid
	// boundaries holds the requested split starts per table index.
	boundaries map[int][]int
	// warnings collected during extraction, surfaced on describe.
	warnings []string
}

// TableInfo summarizes one table of a session for display.
type TableInfo struct {
	Index      int      `json:"index"`
	Rows       int      `json:"rows"`
	Columns    []string `json:"columns"`
	Boundaries []int    `json:"boundaries,omitempty"`
	Parts      int      `json:"parts"`
}

// Snapshot is a point-in-time description of a session.
type Snapshot struct {
	ID        string      `json:"id"`
	Path      string      `json:"path"`
	CreatedAt time.Time   `json:"created_at"`
	Tables    []TableInfo `json:"tables"`
	Warnings  []string    `json:"warnings,omitempty"`
}

func newSession(id, path string, grids []table.Grid, warnings []string) *Session {
	return &Session{
		ID:         id,
		Path:       path,
		CreatedAt:  time.Now(),
		grids:      grids,
		boundaries: make(map[int][]int),
		warnings:   warnings,
	}
}

// TableCount returns the number of tables held by the session.
func (s *Session) TableCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grids)
}

// Grid returns a copy of the working grid at the given table index.
func (s *Session) Grid(tableIdx int) (table.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTableIdx(tableIdx); err != nil {
		return table.Grid{}, err
	}
	return s.grids[tableIdx].Clone(), nil
}

// Trim replaces the working grid with the row range [start, end]. Inputs
// are clamped into the grid's domain: negatives rise to 0, overshoots
// drop to the last row, and a reversed range is swapped. Trimming an
// empty grid is a no-op.
func (s *Session) Trim(tableIdx, start, end int) (table.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTableIdx(tableIdx); err != nil {
		return table.Grid{}, err
	}

	g := s.grids[tableIdx]
	start, end = clampRange(start, end, g.RowCount())

	trimmed, err := table.SelectRange(g, start, end)
	if err != nil {
		// Unreachable after clamping; a failure here is a defect and
		// must not be hidden.
		return table.Grid{}, err
	}

	s.grids[tableIdx] = trimmed
	delete(s.boundaries, tableIdx)
	return trimmed.Clone(), nil
}

// Edit applies cell changes to the working grid. Unknown column names are
// rejected here with a user-facing error so the table-level contract
// error never fires; row indices below zero clamp to zero, and rows past
// the end grow the grid.
func (s *Session) Edit(tableIdx int, edits []table.CellEdit) (table.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTableIdx(tableIdx); err != nil {
		return table.Grid{}, err
	}

	g := s.grids[tableIdx]
	clamped := make([]table.CellEdit, 0, len(edits))
	for _, e := range edits {
		if !g.HasColumn(e.Column) {
			return table.Grid{}, fmt.Errorf("no column %q in table %d (columns: %s)",
				e.Column, tableIdx, strings.Join(columnNames(g), ", "))
		}
		if e.Row < 0 {
			e.Row = 0
		}
		clamped = append(clamped, e)
	}

	edited, err := table.ApplyEdits(g, clamped)
	if err != nil {
		return table.Grid{}, err
	}

	s.grids[tableIdx] = edited
	delete(s.boundaries, tableIdx)
	return edited.Clone(), nil
}

// SetSplit records split boundaries for a table. The part count clamps
// into [1, rowCount]; surplus boundaries beyond parts-1 are dropped and
// missing ones are filled from an even spread. parts == 1 clears any
// split. The resulting partitions are returned for display.
func (s *Session) SetSplit(tableIdx, parts int, boundaries []int) ([]table.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTableIdx(tableIdx); err != nil {
		return nil, err
	}

	g := s.grids[tableIdx]
	r := g.RowCount()

	if parts < 1 {
		parts = 1
	}
	if parts > r {
		parts = r
	}

	if parts <= 1 || r == 0 {
		delete(s.boundaries, tableIdx)
		return table.Split(g, nil), nil
	}

	if len(boundaries) > parts-1 {
		boundaries = boundaries[:parts-1]
	}
	boundaries = append([]int{}, boundaries...)
	if len(boundaries) < parts-1 {
		// Missing split points fall back to an even spread.
		even := table.EvenBoundaries(r, parts)
		boundaries = append(boundaries, even[len(boundaries):]...)
	}

	sort.Ints(boundaries)
	s.boundaries[tableIdx] = boundaries

	return table.Split(g, boundaries), nil
}

// Parts returns the current (possibly split) grids of every table, in
// table order, each table's partitions kept contiguous. This is the
// sequence the serializer and exporters consume; it is derived fresh on
// every call.
func (s *Session) Parts() []table.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()

	var parts []table.Grid
	for idx, g := range s.grids {
		parts = append(parts, table.Split(g, s.boundaries[idx])...)
	}
	return parts
}

// Describe returns a snapshot of the session state.
func (s *Session) Describe() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.ID,
		Path:      s.Path,
		CreatedAt: s.CreatedAt,
		Warnings:  s.warnings,
	}

	for idx, g := range s.grids {
		info := TableInfo{
			Index:      idx,
			Rows:       g.RowCount(),
			Columns:    columnNames(g),
			Boundaries: s.boundaries[idx],
			Parts:      len(table.Split(g, s.boundaries[idx])),
		}
		snap.Tables = append(snap.Tables, info)
	}

	return snap
}

func (s *Session) checkTableIdx(tableIdx int) error {
	if tableIdx < 0 || tableIdx >= len(s.grids) {
		return fmt.Errorf("no table %d in session %s (document has %d)", tableIdx, s.ID, len(s.grids))
	}
	return nil
}

// clampRange forces a user-supplied inclusive row range into the valid
// domain of a grid with rowCount rows.
func clampRange(start, end, rowCount int) (int, int) {
	if rowCount == 0 {
		return 0, 0
	}
	if start < 0 {
		start = 0
	}
	if start > rowCount-1 {
		start = rowCount - 1
	}
	if end < start {
		end = start
	}
	if end > rowCount-1 {
		end = rowCount - 1
	}
	return start, end
}

func columnNames(g table.Grid) []string {
	names := make([]string, 0, g.ColumnCount())
	for _, c := range g.Columns {
		names = append(names, c.Name)
	}
	return names
}

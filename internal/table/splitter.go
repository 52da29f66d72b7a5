package table

import "sort"

// Split partitions the grid's rows into contiguous, non-overlapping,
// non-empty sub-grids covering [0, RowCount) exactly once. Boundaries are
// start-of-partition row indices; 0 and RowCount are implied and need not
// be supplied. Splitting is best-effort and never fails:
//
//   - boundaries outside (0, RowCount) are discarded,
//   - duplicates collapse,
//   - if nothing usable remains the whole grid comes back as a single
//     partition,
//   - an empty grid yields zero partitions.
func Split(g Grid, boundaries []int) []Grid {
	r := g.RowCount()
	if r == 0 {
		return nil
	}
	if len(boundaries) == 0 {
		return []Grid{g.Clone()}
	}

	cuts := normalizeBoundaries(boundaries, r)

	parts := make([]Grid, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		// Bounds are valid by construction, so SelectRange cannot fail.
		part, err := SelectRange(g, cuts[i], cuts[i+1]-1)
		if err != nil {
			continue
		}
		parts = append(parts, part)
	}

	return parts
}

// EvenBoundaries returns parts-1 start-of-partition indices that divide
// rowCount rows into roughly equal contiguous parts. It is the default
// suggestion offered before the user adjusts split points. parts < 2 or
// rowCount == 0 yield no boundaries.
func EvenBoundaries(rowCount, parts int) []int {
	if parts < 2 || rowCount == 0 {
		return nil
	}
	if parts > rowCount {
		parts = rowCount
	}
	out := make([]int, 0, parts-1)
	for i := 1; i < parts; i++ {
		out = append(out, i*rowCount/parts)
	}
	return out
}

// normalizeBoundaries forms {0} ∪ boundaries ∪ {r}, drops out-of-range
// values, deduplicates and sorts, guaranteeing a strictly increasing cut
// sequence that starts at 0 and ends at r.
func normalizeBoundaries(boundaries []int, r int) []int {
	seen := map[int]bool{0: true, r: true}
	cuts := []int{0, r}

	for _, b := range boundaries {
		if b <= 0 || b >= r || seen[b] {
			continue
		}
		seen[b] = true
		cuts = append(cuts, b)
	}

	sort.Ints(cuts)
	return cuts
}

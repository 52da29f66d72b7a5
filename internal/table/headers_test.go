package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name       string
		header     RawRow
		wantNames  []string
		wantTitles []string
	}{
		{
			name:       "all labelled",
			header:     RawRow{Cell("Name"), Cell("Age"), Cell("City")},
			wantNames:  []string{"Name", "Age", "City"},
			wantTitles: []string{"Name", "Age", "City"},
		},
		{
			name:       "blank and duplicate labels",
			header:     RawRow{Cell(""), Cell("Total"), Cell("Total"), Cell("")},
			wantNames: []string{"Column_1", "Total", "Total_1", "Column_4"},
			// Duplicate labels keep their original title; only the
			// identifier carries the suffix.
			wantTitles: []string{"Column_1", "Total", "Total", "Column_4"},
		},
		{
			name:       "null header cell",
			header:     RawRow{Cell("ID"), NullCell(), Cell("Value")},
			wantNames:  []string{"ID", "Column_2", "Value"},
			wantTitles: []string{"ID", "Column_2", "Value"},
		},
		{
			name:       "whitespace only is blank",
			header:     RawRow{Cell("   "), Cell("\t")},
			wantNames:  []string{"Column_1", "Column_2"},
			wantTitles: []string{"Column_1", "Column_2"},
		},
		{
			name:       "surrounding whitespace trimmed",
			header:     RawRow{Cell("  Amount  "), Cell(" Amount")},
			wantNames:  []string{"Amount", "Amount_1"},
			wantTitles: []string{"Amount", "Amount"},
		},
		{
			name:       "triple duplicate",
			header:     RawRow{Cell("X"), Cell("X"), Cell("X")},
			wantNames:  []string{"X", "X_1", "X_2"},
			wantTitles: []string{"X", "X", "X"},
		},
		{
			name:      "label colliding with synthesized name",
			header:    RawRow{Cell("Column_2"), Cell("")},
			wantNames: []string{"Column_2", "Column_2_1"},
			// The second column is blank, so its synthesized name doubles
			// as its title even after the collision suffix.
			wantTitles: []string{"Column_2", "Column_2_1"},
		},
		{
			name:       "empty header row",
			header:     RawRow{},
			wantNames:  []string{},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := NormalizeHeaders(tt.header)

			names := make([]string, 0, len(specs))
			titles := make([]string, 0, len(specs))
			for _, spec := range specs {
				names = append(names, spec.Name)
				titles = append(titles, spec.Title)
			}

			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestNormalizeHeadersUniqueness(t *testing.T) {
	header := RawRow{
		Cell("A"), Cell("A"), Cell(""), Cell(""), Cell("A_1"), Cell("Column_3"),
	}

	specs := NormalizeHeaders(header)

	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		assert.False(t, seen[spec.Name], "duplicate name %q", spec.Name)
		seen[spec.Name] = true
		assert.NotEmpty(t, spec.Name)
	}
	assert.Len(t, specs, len(header))
}

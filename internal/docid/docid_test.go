package docid

import "testing"

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
		desc  string
	}{
		{"", 0, "empty"},
		{"hello", 5, "ascii"},
		{"café", 4, "latin-1 supplement, still 1 unit each"},
		{"😀", 2, "astral emoji is a surrogate pair"},
		{"a😀b", 4, "surrogate pair amid ascii"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := UTF16Len(tt.input); got != tt.want {
				t.Errorf("UTF16Len(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParagraphLength(t *testing.T) {
	tests := []struct {
		shape ParagraphShape
		want  uint32
		desc  string
	}{
		{ParagraphShape{TextLen: 0, Specials: 0}, 1, "empty paragraph is just the terminator"},
		{ParagraphShape{TextLen: 11, Specials: 0}, 12, "Hello world + terminator"},
		{ParagraphShape{TextLen: 3, Specials: 2}, 6, "text + two inline specials + terminator"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := ParagraphLength(tt.shape); got != tt.want {
				t.Errorf("ParagraphLength(%+v) = %d, want %d", tt.shape, got, tt.want)
			}
		})
	}
}

func TestTableLength(t *testing.T) {
	// 2x2 table, every cell content length 1 (empty cells).
	empty := TableShape{Rows: []RowShape{
		{Cells: []CellShape{{ContentLength: 1}, {ContentLength: 1}}},
		{Cells: []CellShape{{ContentLength: 1}, {ContentLength: 1}}},
	}}
	// 2 (start/end) + 2 rows * (1 row marker + 2 cells * (1 marker + 1 content)) = 2 + 2*(1+4) = 12
	if got := TableLength(empty); got != 12 {
		t.Errorf("TableLength(empty 2x2) = %d, want 12", got)
	}

	withContent := TableShape{Rows: []RowShape{
		{Cells: []CellShape{{ContentLength: 3}, {ContentLength: 1}}},
	}}
	// 2 + 1*(1 + (1+3)+(1+1)) = 2 + 1*(1+4+2) = 2 + 7 = 9
	if got := TableLength(withContent); got != 9 {
		t.Errorf("TableLength(1x2 with content) = %d, want 9", got)
	}
}

func TestCellContentStart(t *testing.T) {
	// table at pristine index 5, 2x2 grid, all cells content length 1.
	tbl := TableShape{Rows: []RowShape{
		{Cells: []CellShape{{ContentLength: 1}, {ContentLength: 1}}},
		{Cells: []CellShape{{ContentLength: 1}, {ContentLength: 1}}},
	}}

	// Walk by hand to double check against the formula instead of hardcoding
	// a value that could silently encode the same bug as the implementation.
	idx := uint32(5) + 1 // table start marker
	idx++                // row 0 marker
	got := idx + 1        // row0/col0 cell marker consumed, content starts here
	if got2 := CellContentStart(5, tbl, 0, 0); got2 != got {
		t.Errorf("CellContentStart(row0,col0) = %d, want %d", got2, got)
	}

	// row0 col1: after row0/col0 (marker+content=1+1=2) plus its own marker.
	idx2 := uint32(5) + 1 + 1 /*row marker*/ + 1 /*col0 marker*/ + 1 /*col0 content*/ + 1 /*col1 marker*/
	if got2 := CellContentStart(5, tbl, 0, 1); got2 != idx2 {
		t.Errorf("CellContentStart(row0,col1) = %d, want %d", got2, idx2)
	}
}

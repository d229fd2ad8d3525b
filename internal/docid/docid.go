// Package docid implements the Index Model: pure UTF-16 length math over
// pristine block shapes. Every function here is total and side-effect free —
// the rest of the engine treats pristine indices as derived, never mutated.
package docid

import "unicode/utf16"

// UTF16Len returns the number of UTF-16 code units s would occupy. Runes
// above U+FFFF (astral plane) are surrogate pairs and count as 2.
func UTF16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UTF16LenRunes is UTF16Len for an already-decoded rune slice, used where
// callers already hold runes (e.g. diffing within a run) and want to avoid
// re-decoding UTF-8.
func UTF16LenRunes(rs []rune) uint32 {
	var n uint32
	for _, r := range rs {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Encode16 is a thin wrapper over unicode/utf16.Encode, exposed so callers
// that need actual code-unit offsets (not just counts) share one
// surrogate-aware implementation.
func Encode16(rs []rune) []uint16 {
	return utf16.Encode(rs)
}

// ParagraphShape is the minimal information the Index Model needs to compute
// a paragraph's pristine length: the UTF-16 length of its concatenated text
// runs, and the count of inline specials (each contributes exactly one unit).
type ParagraphShape struct {
	TextLen  uint32
	Specials uint32
}

// ParagraphLength implements the §3 formula: text + specials + 1 terminator.
func ParagraphLength(p ParagraphShape) uint32 {
	return p.TextLen + p.Specials + 1
}

// CellShape holds a table cell's pristine content length. Content length is
// the length of whatever lives inside the cell (paragraphs, nested tables);
// it is always >= 1 because of the mandatory cell-end newline sentinel.
type CellShape struct {
	ContentLength uint32
}

// RowShape is one table row's cells, left to right.
type RowShape struct {
	Cells []CellShape
}

// TableShape is a table's full row/cell grid, used only for length math —
// it carries no identity (row/column ids live on blocktree.Table).
type TableShape struct {
	Rows []RowShape
}

// TableLength implements the §3 formula:
//
//	2 (table start/end) + sum(rows, 1 + sum(cells, 1 + cell_content_length))
//
// Nested tables are already folded into their containing cell's
// ContentLength by the caller (blocktree), so this need not recurse itself.
func TableLength(t TableShape) uint32 {
	total := uint32(2)
	for _, row := range t.Rows {
		rowTotal := uint32(1)
		for _, cell := range row.Cells {
			if cell.ContentLength == 0 {
				panic("docid: cell content length must be >= 1 (missing cell-end newline sentinel)")
			}
			rowTotal += 1 + cell.ContentLength
		}
		total += rowTotal
	}
	return total
}

// CellContentStart walks a table's rows top-to-bottom and cells left-to-right
// from tableStart, accumulating 1 unit for the table-start marker, 1 per row
// marker, 1 per cell marker, and each cell's running content length, and
// returns the pristine index at which targetRow/targetCol's content begins.
// targetRow and targetCol are 0-indexed.
func CellContentStart(tableStart uint32, t TableShape, targetRow, targetCol int) uint32 {
	idx := tableStart + 1 // table-start marker
	for r := 0; r < targetRow; r++ {
		idx++ // row marker
		for _, cell := range t.Rows[r].Cells {
			idx += 1 + cell.ContentLength
		}
	}
	idx++ // target row's row marker
	row := t.Rows[targetRow]
	for c := 0; c < targetCol; c++ {
		idx += 1 + row.Cells[c].ContentLength
	}
	idx++ // target cell's cell marker
	return idx
}

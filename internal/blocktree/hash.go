package blocktree

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/extradoc/extradoc/internal/docxml"
	"golang.org/x/text/unicode/norm"
)

// hashParagraph builds the Aligner's exact-hash-pass key: type tag +
// paragraph tag + style refs + normalized text/specials, so two pulls of
// the same paragraph hash identically even if Unicode normalization forms
// (composed vs. decomposed accents) differ between passes.
func hashParagraph(p *Paragraph) string {
	var b strings.Builder
	b.WriteString("paragraph\x1f")
	b.WriteString(p.Tag)
	b.WriteString("\x1f")
	b.WriteString(p.StyleRef)
	b.WriteString("\x1f")
	b.WriteString(p.ListID)
	for _, c := range p.Content {
		b.WriteString("\x1f")
		switch {
		case c.Run != nil:
			b.WriteString("r:")
			b.WriteString(c.Run.Style)
			b.WriteString(":")
			b.WriteString(norm.NFC.String(c.Run.Text))
		case c.Special != nil:
			b.WriteString("s:")
			b.WriteString(c.Special.Kind)
			b.WriteString(":")
			b.WriteString(c.Special.Ref)
		}
	}
	return sum(b.String())
}

func hashTable(t *Table) string {
	var b strings.Builder
	b.WriteString("table\x1f")
	b.WriteString(strings.Join(t.ColIDs, ","))
	for _, row := range t.Rows {
		b.WriteString("\x1frow:")
		b.WriteString(row.RowID)
		for _, cell := range row.Cells {
			b.WriteString("\x1fcell:")
			b.WriteString(cell.ColID)
			b.WriteString(":")
			b.WriteString(flattenCellText(cell))
		}
	}
	return sum(b.String())
}

// flattenCellText concatenates a cell's paragraph text for table
// fingerprinting. Design notes (spec.md §9) call out that a constant
// "T:table" fingerprint makes swapped tables invisible to LCS; flattened
// cell text is the content-based fingerprint this engine uses instead.
func flattenCellText(cell TableCell) string {
	var b strings.Builder
	for _, blk := range cell.Blocks {
		if blk.Kind == BlockParagraph {
			b.WriteString(norm.NFC.String(blk.Paragraph.PlainText()))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hashTOC(t *docxml.TOC) string {
	return sum("toc\x1f" + t.Content)
}

func sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

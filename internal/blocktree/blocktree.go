// Package blocktree implements the Block Tree Builder (spec.md §4.2): it
// parses a docxml.Document into a typed tree annotated with pristine
// indices, computing every length via internal/docid and attaching a
// stable content hash to each block for the Aligner (internal/align).
package blocktree

import (
	"fmt"

	"github.com/extradoc/extradoc/internal/docid"
	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/extradoc/extradoc/internal/rerr"
)

// SegmentKind identifies which independent index space a segment occupies.
type SegmentKind int

const (
	SegmentBody SegmentKind = iota
	SegmentHeader
	SegmentFooter
	SegmentFootnote
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentBody:
		return "body"
	case SegmentHeader:
		return "header"
	case SegmentFooter:
		return "footer"
	case SegmentFootnote:
		return "footnote"
	default:
		return "unknown"
	}
}

// DefaultTabID is assigned to a legacy single-tab document's synthetic tab.
const DefaultTabID = "tab-default"

// Segment is one independent UTF-16 index space.
type Segment struct {
	Kind SegmentKind
	ID   string // segment id: tab id for body, header/footer/footnote id otherwise
	// StyleKind carries a header/footer's DEFAULT/FIRST_PAGE_ONLY/EVEN_PAGE
	// designation (docxml.Header.Kind / docxml.Footer.Kind); unused for
	// body and footnote segments.
	StyleKind  string
	TabID      string
	Blocks     []*Block
	SegmentEnd uint32 // exclusive upper bound; SegmentEnd-1 is the sentinel newline
}

// BlockKind discriminates the union stored in Block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockTable
	BlockSectionBreak
	BlockTOC
)

// Block is a typed unit inside a segment with pristine start/end indices
// (segment coordinates) and a stable content hash used by the Aligner.
type Block struct {
	Kind       BlockKind
	StartIndex uint32
	EndIndex   uint32
	Hash       string

	Paragraph    *Paragraph
	Table        *Table
	SectionBreak *SectionBreak
	TOC          *TOC
}

// Run is a contiguous text run.
type Run struct {
	Text  string
	Style string
}

// Special is an inline special contributing exactly one UTF-16 unit.
type Special struct {
	Kind string
	Ref  string
	Attr map[string]string
}

// ParaContent is one element of paragraph content, in document order.
type ParaContent struct {
	Run     *Run
	Special *Special
}

// Paragraph is a paragraph block.
type Paragraph struct {
	Tag      string
	StyleRef string
	ListID   string
	Content  []ParaContent
}

// PlainText concatenates the paragraph's run text, ignoring specials.
func (p *Paragraph) PlainText() string {
	var s string
	for _, c := range p.Content {
		if c.Run != nil {
			s += c.Run.Text
		}
	}
	return s
}

// SpecialCount returns the number of inline specials in the paragraph.
func (p *Paragraph) SpecialCount() uint32 {
	var n uint32
	for _, c := range p.Content {
		if c.Special != nil {
			n++
		}
	}
	return n
}

// SectionBreak is a leaf block.
type SectionBreak struct{}

// TOC is a read-only leaf block.
type TOC struct {
	Content string
}

// TableCell is one cell's content, treated as a mini-segment: its own block
// list with indices relative to the table's coordinate space, plus the
// pristine content length docid.CellContentStart needs.
type TableCell struct {
	ColID         string
	Blocks        []*Block
	StartIndex    uint32 // pristine index of content start (segment coordinates)
	EndIndex      uint32
	ContentLength uint32
}

// TableRow is one row with a stable id and its cells left to right.
type TableRow struct {
	RowID      string
	Cells      []TableCell
	StartIndex uint32 // pristine index of the row marker
}

// Table is a table block: grid of rows/cols with stable ids.
type Table struct {
	ColIDs     []string
	Rows       []TableRow
	Style      string
	TableStart uint32 // pristine index of the table-start marker (== Block.StartIndex)
}

// Tab is one tab's segments.
type Tab struct {
	ID        string
	Body      *Segment
	Headers   []*Segment
	Footers   []*Segment
	Footnotes []*Segment
}

// Document is the root of the built block tree, one per snapshot (pristine
// or current — only the pristine side has start/end indices populated
// meaningfully; see Build).
type Document struct {
	Tabs []*Tab
}

// Build parses a docxml.Document into a Document, computing pristine
// indices and content hashes. Set computeIndices=false for the current-side
// snapshot: current-side indices are unused by the rest of the engine
// (spec.md §4.2) and computing them would misleadingly suggest otherwise.
func Build(doc *docxml.Document, computeIndices bool) (*Document, error) {
	b := &builder{computeIndices: computeIndices}

	tabs := doc.Tabs
	if len(tabs) == 0 && doc.Body != nil {
		tabs = []docxml.Tab{{ID: DefaultTabID, Body: *doc.Body}}
	}
	if len(tabs) == 0 {
		return nil, rerr.New(rerr.MalformedInput, "document", "no tabs and no legacy body")
	}

	seenTabIDs := map[string]bool{}
	out := &Document{}
	for ti, t := range tabs {
		if t.ID == "" {
			return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%d]", ti), "tab missing id")
		}
		if seenTabIDs[t.ID] {
			return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s]", t.ID), "duplicate tab id")
		}
		seenTabIDs[t.ID] = true

		tab := &Tab{ID: t.ID}
		bodySeg, err := b.buildSegment(SegmentBody, t.ID, t.ID, t.Body, 1)
		if err != nil {
			return nil, err
		}
		tab.Body = bodySeg

		seenHeaderIDs := map[string]bool{}
		for _, h := range t.Headers {
			if h.ID == "" {
				return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s].header", t.ID), "header missing id")
			}
			if seenHeaderIDs[h.ID] {
				return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s].header[%s]", t.ID, h.ID), "duplicate header id")
			}
			seenHeaderIDs[h.ID] = true
			seg, err := b.buildSegment(SegmentHeader, h.ID, t.ID, h.Body, 0)
			if err != nil {
				return nil, err
			}
			seg.StyleKind = h.Kind
			tab.Headers = append(tab.Headers, seg)
		}

		seenFooterIDs := map[string]bool{}
		for _, f := range t.Footers {
			if f.ID == "" {
				return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s].footer", t.ID), "footer missing id")
			}
			if seenFooterIDs[f.ID] {
				return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s].footer[%s]", t.ID, f.ID), "duplicate footer id")
			}
			seenFooterIDs[f.ID] = true
			seg, err := b.buildSegment(SegmentFooter, f.ID, t.ID, f.Body, 0)
			if err != nil {
				return nil, err
			}
			seg.StyleKind = f.Kind
			tab.Footers = append(tab.Footers, seg)
		}

		seenFootnoteIDs := map[string]bool{}
		for _, fn := range t.Footnotes {
			if fn.ID == "" {
				return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s].footnote", t.ID), "footnote missing id")
			}
			if seenFootnoteIDs[fn.ID] {
				return nil, rerr.New(rerr.MalformedInput, fmt.Sprintf("tab[%s].footnote[%s]", t.ID, fn.ID), "duplicate footnote id")
			}
			seenFootnoteIDs[fn.ID] = true
			seg, err := b.buildSegment(SegmentFootnote, fn.ID, t.ID, fn.Body, 0)
			if err != nil {
				return nil, err
			}
			tab.Footnotes = append(tab.Footnotes, seg)
		}

		out.Tabs = append(out.Tabs, tab)
	}
	return out, nil
}

type builder struct {
	computeIndices bool
}

func (b *builder) buildSegment(kind SegmentKind, id, tabID string, body docxml.Body, start uint32) (*Segment, error) {
	seg := &Segment{Kind: kind, ID: id, TabID: tabID}
	idx := start

	blocks := make([]*Block, 0, len(body.Blocks))
	for bi, xb := range body.Blocks {
		block, length, err := b.buildBlock(xb, idx, fmt.Sprintf("%s[%s].block[%d]", kind, id, bi))
		if err != nil {
			return nil, err
		}
		// A leading section break in a body segment describes the document's
		// implicit initial section break, which index 0 already accounts for
		// (spec.md §3); it occupies no additional width. A section break
		// anywhere else is a real structural element and keeps its width.
		if kind == SegmentBody && bi == 0 && xb.SectionBreak != nil {
			length = 0
		}
		if b.computeIndices {
			block.StartIndex = idx
			block.EndIndex = idx + length
		}
		idx += length
		blocks = append(blocks, block)
	}
	// The segment terminal newline: spec.md §3 — "segments end with exactly
	// one terminal newline" which is not a separate block, it is folded
	// into the preceding structure already (paragraph terminators, table
	// end marker). SegmentEnd is simply the running index.
	seg.Blocks = blocks
	if b.computeIndices {
		seg.SegmentEnd = idx
	}
	return seg, nil
}

func (b *builder) buildBlock(xb docxml.Block, pristineStart uint32, path string) (*Block, uint32, error) {
	switch {
	case xb.Paragraph != nil:
		p, length := b.buildParagraph(xb.Paragraph)
		block := &Block{Kind: BlockParagraph, Paragraph: p}
		block.Hash = hashParagraph(p)
		return block, length, nil
	case xb.Table != nil:
		t, length, err := b.buildTable(xb.Table, pristineStart, path)
		if err != nil {
			return nil, 0, err
		}
		block := &Block{Kind: BlockTable, Table: t}
		block.Hash = hashTable(t)
		return block, length, nil
	case xb.SectionBreak != nil:
		block := &Block{Kind: BlockSectionBreak, SectionBreak: &SectionBreak{}}
		block.Hash = "section_break"
		return block, 1, nil
	case xb.TOC != nil:
		block := &Block{Kind: BlockTOC, TOC: &TOC{Content: xb.TOC.Content}}
		block.Hash = hashTOC(xb.TOC)
		return block, 1, nil
	default:
		return nil, 0, rerr.New(rerr.MalformedInput, path, "block has no recognized content")
	}
}

func (b *builder) buildParagraph(xp *docxml.Paragraph) (*Paragraph, uint32) {
	p := &Paragraph{Tag: xp.Tag, StyleRef: xp.StyleRef, ListID: xp.ListID}
	var textLen, specials uint32
	for _, c := range xp.Content {
		if c.Run != nil {
			p.Content = append(p.Content, ParaContent{Run: &Run{Text: c.Run.Text, Style: c.Run.Style}})
			textLen += docid.UTF16Len(c.Run.Text)
		} else if c.Special != nil {
			p.Content = append(p.Content, ParaContent{Special: &Special{Kind: c.Special.Kind, Ref: c.Special.Ref, Attr: c.Special.Attr}})
			specials++
		}
	}
	length := docid.ParagraphLength(docid.ParagraphShape{TextLen: textLen, Specials: specials})
	return p, length
}

func (b *builder) buildTable(xt *docxml.Table, tableStart uint32, path string) (*Table, uint32, error) {
	t := &Table{ColIDs: append([]string(nil), xt.ColIDs...), Style: xt.Style, TableStart: tableStart}

	idx := tableStart + 1 // past the table-start marker
	shape := docid.TableShape{}
	for ri, xr := range xt.Rows {
		if xr.RowID == "" {
			return nil, 0, rerr.New(rerr.MalformedInput, fmt.Sprintf("%s.row[%d]", path, ri), "row missing id")
		}
		// Row ids need only be unique *within this table*; duplicate row ids
		// across different tables, or repeated ids used for positional
		// matching within one id group (spec.md §4.3), are legal — only an
		// exact duplicate occupying the same row slot twice is rejected,
		// which cannot happen from one decode pass, so no uniqueness check
		// here beyond presence.
		rowStart := idx
		idx++ // row marker
		row := TableRow{RowID: xr.RowID, StartIndex: rowStart}
		rowShape := docid.RowShape{}
		for ci, xc := range xr.Cells {
			cellMarkerIdx := idx
			idx++ // cell marker
			cellBlocks, cellLen, err := b.buildCellBlocks(xc.Body, idx, fmt.Sprintf("%s.row[%d].cell[%d]", path, ri, ci))
			if err != nil {
				return nil, 0, err
			}
			cell := TableCell{
				ColID:         xc.ColID,
				Blocks:        cellBlocks,
				StartIndex:    cellMarkerIdx + 1,
				EndIndex:      cellMarkerIdx + 1 + cellLen,
				ContentLength: cellLen,
			}
			row.Cells = append(row.Cells, cell)
			rowShape.Cells = append(rowShape.Cells, docid.CellShape{ContentLength: cellLen})
			idx += cellLen
		}
		t.Rows = append(t.Rows, row)
		shape.Rows = append(shape.Rows, rowShape)
	}
	length := docid.TableLength(shape)
	return t, length, nil
}

func (b *builder) buildCellBlocks(body docxml.Body, start uint32, path string) ([]*Block, uint32, error) {
	idx := start
	var blocks []*Block
	for bi, xb := range body.Blocks {
		block, length, err := b.buildBlock(xb, idx, fmt.Sprintf("%s.block[%d]", path, bi))
		if err != nil {
			return nil, 0, err
		}
		if b.computeIndices {
			block.StartIndex = idx
			block.EndIndex = idx + length
		}
		idx += length
		blocks = append(blocks, block)
	}
	contentLen := idx - start
	if contentLen == 0 {
		// Empty cell content still carries the mandatory cell-end newline
		// sentinel (spec.md §3): a cell with no paragraphs still has length 1.
		contentLen = 1
	}
	return blocks, contentLen, nil
}

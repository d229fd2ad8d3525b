// Package changetree implements the Change Tree Builder (spec.md §4.4): it
// walks an Aligner result and emits a tagged-variant tree of only the
// nodes whose op is not Unchanged (plus their ancestors), ready for the
// Backwards Walk (internal/walk) to traverse.
package changetree

import (
	"fmt"

	"github.com/extradoc/extradoc/internal/align"
	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/rerr"
)

// Op mirrors align.Op; re-exported so callers of this package need not
// import align just to read a change node's op.
type Op = align.Op

const (
	Unchanged = align.Unchanged
	Added     = align.Added
	Deleted   = align.Deleted
	Modified  = align.Modified
)

// NodeKind discriminates the tagged variant (spec.md §3 "Change node").
// Matching on Kind is meant to be exhaustive everywhere this tree is
// walked — a new kind must fail loudly, not fall through silently
// (spec.md §9 "dynamic dispatch on untyped dicts").
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindTab
	KindSegment
	KindContentBlock
	KindTable
	KindTableRow
	KindTableColumn
	KindTableCell
	KindParagraph
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindTab:
		return "tab"
	case KindSegment:
		return "segment"
	case KindContentBlock:
		return "content_block"
	case KindTable:
		return "table"
	case KindTableRow:
		return "table_row"
	case KindTableColumn:
		return "table_column"
	case KindTableCell:
		return "table_cell"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Node is one entry in the change tree.
type Node struct {
	Kind   NodeKind
	Op     Op
	NodeID string

	PristineStart uint32
	PristineEnd   uint32

	Children []*Node

	// ContentBlock payload: the grouped paragraph blocks on each side, in
	// document order. Added nodes have only Current; Deleted only
	// Pristine; Modified/Unchanged have both, index-paired.
	PristineBlocks []*blocktree.Block
	CurrentBlocks  []*blocktree.Block

	// Table node fields.
	TableStart uint32
	ColIDs     []string // post-change column ids, left to right

	// TableRow/TableColumn node fields: the node's position in the
	// pristine grid (Deleted/Modified) or, for Added, the new row or
	// column's position in the current grid; the walk inserts it next to
	// the row or column before it.
	RowIndex int
	ColIndex int

	// Segment node fields (only meaningful on KindSegment/KindTab roots
	// produced by higher-level orchestration, not by BuildSegment itself).
	SegmentKind blocktree.SegmentKind
	SegmentID   string
	SegmentEnd  uint32
	TabID       string
}

// Warning is a non-fatal skipped-change notice (spec.md §7 side channel).
type Warning struct {
	NodePath string
	Msg      string
}

// BuildSegment aligns pristine and current blocks for one segment and
// returns the change nodes for that segment (children of an implicit
// Segment root the caller attaches itself, since segment identity belongs
// to the orchestrator in internal/reconcile, not here).
func BuildSegment(pristine, current []*blocktree.Block, segmentEnd uint32, path string) ([]*Node, []Warning, error) {
	pairs := align.Align(pristine, current)

	var nodes []*Node
	var warnings []Warning
	var lastPristineEnd uint32

	i := 0
	for i < len(pairs) {
		p := pairs[i]

		switch {
		case isParagraphPair(p) && p.Op != Unchanged:
			group := []align.Pair{p}
			j := i + 1
			for j < len(pairs) && isParagraphPair(pairs[j]) && pairs[j].Op == p.Op && pairs[j].Op != Unchanged && sameTag(pairs[j], p) {
				group = append(group, pairs[j])
				j++
			}
			node, err := buildContentBlock(group, &lastPristineEnd)
			if err != nil {
				return nil, nil, err
			}
			if node != nil {
				nodes = append(nodes, node)
			}
			i = j

		case p.Op == Unchanged:
			advanceLastPristineEnd(&lastPristineEnd, p.Pristine)
			i++

		case p.Pristine != nil && p.Pristine.Kind == blocktree.BlockTable:
			node, warns, err := buildTableNode(p, lastPristineEnd, fmt.Sprintf("%s.table[%d]", path, i))
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, warns...)
			if node != nil {
				nodes = append(nodes, node)
			}
			advanceLastPristineEnd(&lastPristineEnd, p.Pristine)
			i++

		case p.Pristine != nil && p.Pristine.Kind == blocktree.BlockSectionBreak:
			// Structural change touching a section break: the policy
			// decision lives in internal/walk, which applies
			// strict_section_breaks; here we just surface the node.
			nodes = append(nodes, leafNode(p, lastPristineEnd))
			advanceLastPristineEnd(&lastPristineEnd, p.Pristine)
			i++

		case p.Pristine != nil && p.Pristine.Kind == blocktree.BlockTOC:
			warnings = append(warnings, Warning{NodePath: fmt.Sprintf("%s.toc[%d]", path, i), Msg: "table of contents is read-only, change skipped"})
			advanceLastPristineEnd(&lastPristineEnd, p.Pristine)
			i++

		default:
			nodes = append(nodes, leafNode(p, lastPristineEnd))
			advanceLastPristineEnd(&lastPristineEnd, p.Pristine)
			i++
		}
	}

	return nodes, warnings, nil
}

func isParagraphPair(p align.Pair) bool {
	if p.Pristine != nil {
		return p.Pristine.Kind == blocktree.BlockParagraph
	}
	if p.Current != nil {
		return p.Current.Kind == blocktree.BlockParagraph
	}
	return false
}

func sameTag(a, b align.Pair) bool {
	return paragraphTag(a) == paragraphTag(b)
}

func paragraphTag(p align.Pair) string {
	if p.Current != nil && p.Current.Paragraph != nil {
		return p.Current.Paragraph.Tag
	}
	if p.Pristine != nil && p.Pristine.Paragraph != nil {
		return p.Pristine.Paragraph.Tag
	}
	return ""
}

func advanceLastPristineEnd(lastPristineEnd *uint32, b *blocktree.Block) {
	if b != nil && b.EndIndex > *lastPristineEnd {
		*lastPristineEnd = b.EndIndex
	}
}

// buildContentBlock groups consecutive same-op, same-tag Paragraph
// alignments into one ContentBlock node (spec.md §4.4). An all-Unchanged
// group never reaches here (the caller peels Unchanged paragraphs off one
// at a time as hard separators), so this always represents a real change.
func buildContentBlock(group []align.Pair, lastPristineEnd *uint32) (*Node, error) {
	node := &Node{Kind: KindContentBlock, Op: group[0].Op}

	for _, p := range group {
		if p.Pristine != nil {
			node.PristineBlocks = append(node.PristineBlocks, p.Pristine)
		}
		if p.Current != nil {
			node.CurrentBlocks = append(node.CurrentBlocks, p.Current)
		}
	}

	switch node.Op {
	case Added:
		node.PristineStart = *lastPristineEnd
		node.PristineEnd = *lastPristineEnd
	case Deleted:
		node.PristineStart = node.PristineBlocks[0].StartIndex
		node.PristineEnd = node.PristineBlocks[len(node.PristineBlocks)-1].EndIndex
		*lastPristineEnd = node.PristineEnd
	case Modified:
		node.PristineStart = node.PristineBlocks[0].StartIndex
		node.PristineEnd = node.PristineBlocks[len(node.PristineBlocks)-1].EndIndex
		*lastPristineEnd = node.PristineEnd
	default:
		return nil, rerr.New(rerr.IndexInvariantViolated, "content_block", "unexpected op in grouped content block")
	}

	return node, nil
}

// leafNode builds a single-block change node for a non-paragraph,
// non-table leaf (section break, TOC). The change-node kind enum
// (spec.md §3) has no dedicated SectionBreak/TOC variant; these are
// carried as KindParagraph nodes with a single block, and the walker
// dispatches on the underlying blocktree.BlockKind rather than NodeKind
// for them.
func leafNode(p align.Pair, lastPristineEnd uint32) *Node {
	node := &Node{Kind: KindParagraph, Op: p.Op}
	if p.Pristine != nil {
		node.PristineBlocks = []*blocktree.Block{p.Pristine}
		node.PristineStart = p.Pristine.StartIndex
		node.PristineEnd = p.Pristine.EndIndex
	} else {
		node.PristineStart = lastPristineEnd
		node.PristineEnd = lastPristineEnd
	}
	if p.Current != nil {
		node.CurrentBlocks = []*blocktree.Block{p.Current}
	}
	return node
}

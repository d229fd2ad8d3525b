package walk

import (
	"sort"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/docid"
	"github.com/extradoc/extradoc/internal/reqgen"
)

// specialAt is one inline special at an offset from its paragraph's start.
type specialAt struct {
	offset  uint32
	special *blocktree.Special
}

// specialOffsets walks a paragraph's content in order, returning each
// inline special together with its UTF-16 offset from the paragraph start.
func specialOffsets(p *blocktree.Paragraph) []specialAt {
	var out []specialAt
	var offset uint32
	for _, c := range p.Content {
		switch {
		case c.Run != nil:
			offset += docid.UTF16Len(c.Run.Text)
		case c.Special != nil:
			out = append(out, specialAt{offset: offset, special: c.Special})
			offset++
		}
	}
	return out
}

// trySpecialOnlyEdit handles the common case where a Modified paragraph's
// text is byte-identical on both sides and only its inline specials
// changed — e.g. a footnote reference or page break inserted mid-sentence
// (spec.md §8 S6). It returns ok=false when the precondition doesn't hold,
// so the caller falls back to the general delete-then-insert path.
//
// This does not attempt a full run-by-run text diff (spec.md §1 explicitly
// scopes content diffing to paragraph/run granularity, not character
// level); a paragraph whose text AND specials both changed in the same
// edit still takes the delete+insert path.
func trySpecialOnlyEdit(pristineBlock, currentBlock *blocktree.Block, segmentID, tabID reqgen.ID, newFootnoteIDs map[string]bool) ([]*reqgen.Record, bool) {
	pp, cp := pristineBlock.Paragraph, currentBlock.Paragraph
	if pp == nil || cp == nil || pp.PlainText() != cp.PlainText() {
		return nil, false
	}

	pristineSpecials := specialOffsets(pp)
	currentSpecials := specialOffsets(cp)

	remaining := append([]specialAt(nil), pristineSpecials...)
	var added []specialAt
	for _, cs := range currentSpecials {
		matched := -1
		for i, ps := range remaining {
			if ps.special.Kind == cs.special.Kind && ps.special.Ref == cs.special.Ref {
				matched = i
				break
			}
		}
		if matched >= 0 {
			remaining = append(remaining[:matched], remaining[matched+1:]...)
			continue
		}
		added = append(added, cs)
	}
	deleted := remaining

	if len(added) == 0 && len(deleted) == 0 {
		return nil, false
	}

	base := pristineBlock.StartIndex
	type op struct {
		offset  uint32
		isAdd   bool
		special *blocktree.Special
	}
	var ops []op
	for _, a := range added {
		ops = append(ops, op{offset: a.offset, isAdd: true, special: a.special})
	}
	for _, d := range deleted {
		ops = append(ops, op{offset: d.offset, isAdd: false, special: d.special})
	}
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].offset > ops[j].offset })

	var records []*reqgen.Record
	for _, o := range ops {
		at := base + o.offset
		if o.isAdd {
			if o.special.Kind == "footnoteRef" && newFootnoteIDs[o.special.Ref] {
				records = append(records, reqgen.CreateFootnote(at, o.special.Ref, segmentID, tabID))
			} else {
				records = append(records, reqgen.InsertSpecial(at, o.special.Kind, o.special.Attr, segmentID, tabID))
			}
			continue
		}
		records = append(records, &reqgen.Record{
			Op:    reqgen.OpDeleteRange,
			Range: &reqgen.Range{Start: at, End: at + 1, SegmentID: segmentID, TabID: tabID},
		})
	}
	return records, true
}

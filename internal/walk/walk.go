// Package walk implements the Backwards Walk / Emitter (spec.md §4.5): it
// traverses one segment's change tree in descending pristine-index order,
// dispatching per node kind to internal/reqgen's primitive mutation
// constructors. Inserted text gets an empty-style UpdateTextStyle and a
// namedStyleType UpdateParagraphStyle; internal/styledelta is not called,
// so run-level style differences are not diffed.
package walk

import (
	"sort"
	"strings"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/changetree"
	"github.com/extradoc/extradoc/internal/docid"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/rerr"
	docsapi "google.golang.org/api/docs/v1"
)

// namedStyleForTag maps a paragraph tag to its Docs API named style type.
// Unknown tags fall back to NORMAL_TEXT rather than failing the walk —
// tags come from the XML dialect, not from user input, so an unrecognized
// tag is a format evolution, not malformed input.
func namedStyleForTag(tag string) string {
	switch tag {
	case "heading1":
		return "HEADING_1"
	case "heading2":
		return "HEADING_2"
	case "heading3":
		return "HEADING_3"
	case "heading4":
		return "HEADING_4"
	case "heading5":
		return "HEADING_5"
	case "heading6":
		return "HEADING_6"
	case "title":
		return "TITLE"
	case "subtitle":
		return "SUBTITLE"
	default:
		return "NORMAL_TEXT"
	}
}

// resetTextStyleFields mirrors the teacher's resetFieldsStr: the full
// field mask for clearing every text-run property, used to normalize
// freshly inserted text to no inherited formatting (spec.md S1: every
// insert carries an accompanying empty-style UpdateTextStyle).
var resetTextStyleFields = strings.Join([]string{
	"bold", "italic", "underline", "strikethrough", "smallCaps",
	"baselineOffset", "foregroundColor", "backgroundColor",
	"fontSize", "weightedFontFamily", "link",
}, ",")

// Warning mirrors changetree.Warning for the emitter's own skip decisions.
type Warning = changetree.Warning

// Horizontal rule policy values, mirroring reconcile.Config's strings
// (duplicated rather than imported to keep internal/walk free of a
// dependency on internal/reconcile).
const (
	HorizontalRuleSkip  = "skip"
	HorizontalRuleError = "error"
)

// Options carries the subset of reconcile.Config the emitter needs.
type Options struct {
	// PreserveListIdentity is carried through but not read by the walk.
	PreserveListIdentity bool
	StrictSectionBreaks  bool
	// NewFootnoteIDs holds footnote ids present in the current document but
	// not the pristine one, so a footnote-reference special can be told
	// apart from a reference to a footnote that already existed (and so
	// only needs an ordinary InsertSpecial, not a CreateFootnote).
	NewFootnoteIDs map[string]bool
	// HorizontalRulePolicy governs what happens when a change would
	// delete or replace a paragraph containing a horizontal rule special,
	// a read-only element (spec.md §6, §7 UnsupportedChange). Defaults to
	// HorizontalRuleSkip's behavior when empty.
	HorizontalRulePolicy string
}

// WalkSegment emits records for one segment's change nodes in descending
// pristine-index order (spec.md §4.5's core invariant). segmentID/tabID
// are attached to every record's location/range.
func WalkSegment(nodes []*changetree.Node, segmentEnd uint32, segmentID, tabID reqgen.ID, opts Options) ([]*reqgen.Record, []Warning, error) {
	ordered := append([]*changetree.Node(nil), nodes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PristineStart > ordered[j].PristineStart
	})

	var records []*reqgen.Record
	var warnings []Warning
	consumed := false

	for _, n := range ordered {
		recs, warns, err := walkNode(n, segmentEnd, segmentID, tabID, opts, &consumed)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, recs...)
		warnings = append(warnings, warns...)
	}

	return records, warnings, nil
}

func walkNode(n *changetree.Node, segmentEnd uint32, segmentID, tabID reqgen.ID, opts Options, consumed *bool) ([]*reqgen.Record, []Warning, error) {
	switch n.Kind {
	case changetree.KindContentBlock, changetree.KindParagraph:
		return walkContentBlock(n, segmentEnd, segmentID, tabID, opts, consumed)
	case changetree.KindTable:
		return walkTable(n, segmentEnd, segmentID, tabID, opts, consumed)
	default:
		return nil, nil, rerr.New(rerr.IndexInvariantViolated, n.Kind.String(), "unhandled node kind reached top-level segment walk")
	}
}

func walkContentBlock(n *changetree.Node, segmentEnd uint32, segmentID, tabID reqgen.ID, opts Options, consumed *bool) ([]*reqgen.Record, []Warning, error) {
	if isSectionBreak(n) {
		if opts.StrictSectionBreaks {
			return nil, nil, rerr.New(rerr.UnsupportedChange, "section_break", "structural change touches a section break")
		}
		return nil, []Warning{{NodePath: "section_break", Msg: "section break change skipped (strict_section_breaks=false)"}}, nil
	}

	if (n.Op == changetree.Deleted || n.Op == changetree.Modified) && hasHorizontalRule(n.PristineBlocks) {
		if opts.HorizontalRulePolicy == HorizontalRuleError {
			return nil, nil, rerr.New(rerr.UnsupportedChange, "horizontal_rule", "change touches a horizontal rule")
		}
		return nil, []Warning{{NodePath: "horizontal_rule", Msg: "horizontal rule change skipped (horizontal_rule_policy=skip)"}}, nil
	}

	switch n.Op {
	case changetree.Deleted:
		rec := reqgen.DeleteRangeClamped(n.PristineStart, n.PristineEnd, segmentEnd, segmentID, tabID)
		if rec == nil {
			return nil, nil, nil
		}
		return []*reqgen.Record{rec}, nil, nil

	case changetree.Added:
		recs := insertContentBlock(n.PristineStart, n.CurrentBlocks, segmentEnd, segmentID, tabID, consumed, false)
		return recs, nil, nil

	case changetree.Modified:
		if len(n.PristineBlocks) == 1 && len(n.CurrentBlocks) == 1 {
			if recs, ok := trySpecialOnlyEdit(n.PristineBlocks[0], n.CurrentBlocks[0], segmentID, tabID, opts.NewFootnoteIDs); ok {
				return recs, nil, nil
			}
		}
		var records []*reqgen.Record
		del := reqgen.DeleteRangeClamped(n.PristineStart, n.PristineEnd, segmentEnd, segmentID, tabID)
		if del != nil {
			records = append(records, del)
		}
		// DeleteRangeClamped never touches the sentinel newline (spec.md §8
		// invariant 4). When this block's pristine end reaches the segment
		// end, that newline survives the delete untouched, so the
		// replacement text must not bring its own terminator.
		atSegmentEnd := n.PristineEnd >= segmentEnd
		records = append(records, insertContentBlock(n.PristineStart, n.CurrentBlocks, segmentEnd, segmentID, tabID, consumed, atSegmentEnd)...)
		return records, nil, nil

	default:
		return nil, nil, rerr.New(rerr.IndexInvariantViolated, "content_block", "unchanged block reached the walker")
	}
}

func isSectionBreak(n *changetree.Node) bool {
	for _, b := range n.PristineBlocks {
		if b.Kind == blocktree.BlockSectionBreak {
			return true
		}
	}
	return false
}

// hasHorizontalRule reports whether any block's paragraph content carries
// an "hr" special, the read-only element spec.md §6/§7 gate behind
// horizontal_rule_policy.
func hasHorizontalRule(blocks []*blocktree.Block) bool {
	for _, b := range blocks {
		if b.Paragraph == nil {
			continue
		}
		for _, c := range b.Paragraph.Content {
			if c.Special != nil && c.Special.Kind == "hr" {
				return true
			}
		}
	}
	return false
}

// insertContentBlock builds the InsertText + normalization records for a
// run of added/replacing paragraphs, concatenated with newline separators
// to match how paragraphs serialize in the segment.
func insertContentBlock(at uint32, blocks []*blocktree.Block, segmentEnd uint32, segmentID, tabID reqgen.ID, consumed *bool, forceSegmentEnd bool) []*reqgen.Record {
	text, lastTag := concatParagraphs(blocks)
	if text == "" {
		return nil
	}
	atSegmentEnd := forceSegmentEnd || at == segmentEnd-1 || at == segmentEnd
	insert := reqgen.InsertText(at, text, segmentID, tabID, atSegmentEnd, consumed)

	insertedLen := docid.UTF16Len(insert.Text)
	style := reqgen.UpdateTextStyle(at, at+insertedLen, segmentID, tabID, &docsapi.TextStyle{}, resetTextStyleFields)
	paraStyle := reqgen.UpdateParagraphStyle(at, at+insertedLen, segmentID, tabID, &docsapi.ParagraphStyle{}, namedStyleForTag(lastTag), "namedStyleType")

	return []*reqgen.Record{insert, style, paraStyle}
}

package walk

import (
	"testing"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/changetree"
	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, src string) *blocktree.Document {
	t.Helper()
	xdoc, err := docxml.Parse([]byte(src))
	require.NoError(t, err)
	doc, err := blocktree.Build(xdoc, true)
	require.NoError(t, err)
	return doc
}

// S1: mid-paragraph text edit emits DeleteRange then InsertText (in that
// order, which is also correct execution order since the API applies the
// batch top-to-bottom) plus the normalization style updates.
func TestWalkSegmentMidParagraphEdit(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>Hello world</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>Hello, cruel world</r></p></body></document>`)

	seg := pristine.Tabs[0].Body
	nodes, _, err := changetree.BuildSegment(seg.Blocks, current.Tabs[0].Body.Blocks, seg.SegmentEnd, "body")
	require.NoError(t, err)

	records, warnings, err := WalkSegment(nodes, seg.SegmentEnd, reqgen.Literal("body"), reqgen.Literal("t1"), Options{StrictSectionBreaks: true})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.GreaterOrEqual(t, len(records), 2)
	require.Equal(t, reqgen.OpDeleteRange, records[0].Op)
	require.Equal(t, reqgen.OpInsertText, records[1].Op)
	require.Equal(t, "Hello, cruel world", records[1].Text)
}

// S2: append paragraph at segment end strips the trailing newline on the
// first (and only) insert at the segment end.
func TestWalkSegmentAppendStripsTrailingNewline(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p></body></document>`)

	seg := pristine.Tabs[0].Body
	nodes, _, err := changetree.BuildSegment(seg.Blocks, current.Tabs[0].Body.Blocks, seg.SegmentEnd, "body")
	require.NoError(t, err)

	records, _, err := WalkSegment(nodes, seg.SegmentEnd, reqgen.Literal("body"), reqgen.Literal("t1"), Options{StrictSectionBreaks: true})
	require.NoError(t, err)
	require.NotEmpty(t, records)
	require.Equal(t, reqgen.OpInsertText, records[0].Op)
	require.Equal(t, "B", records[0].Text)
}

// S3: delete middle paragraph among three yields a single DeleteRange
// covering exactly "B\n".
func TestWalkSegmentDeleteMiddle(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p><p tag="normal"><r>C</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>C</r></p></body></document>`)

	seg := pristine.Tabs[0].Body
	nodes, _, err := changetree.BuildSegment(seg.Blocks, current.Tabs[0].Body.Blocks, seg.SegmentEnd, "body")
	require.NoError(t, err)

	records, _, err := WalkSegment(nodes, seg.SegmentEnd, reqgen.Literal("body"), reqgen.Literal("t1"), Options{StrictSectionBreaks: true})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, reqgen.OpDeleteRange, records[0].Op)
	require.Equal(t, uint32(3), records[0].Range.Start)
	require.Equal(t, uint32(5), records[0].Range.End)
}

func TestWalkSegmentDescendingOrderAcrossMultipleChanges(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>X</r></p><p tag="normal"><r>Y</r></p></body></document>`)

	seg := pristine.Tabs[0].Body
	nodes, _, err := changetree.BuildSegment(seg.Blocks, current.Tabs[0].Body.Blocks, seg.SegmentEnd, "body")
	require.NoError(t, err)

	records, _, err := WalkSegment(nodes, seg.SegmentEnd, reqgen.Literal("body"), reqgen.Literal("t1"), Options{StrictSectionBreaks: true})
	require.NoError(t, err)
	// Every emitted range/location must appear in non-increasing start
	// order (spec.md §8 invariant 5).
	var lastStart uint32 = ^uint32(0)
	for _, r := range records {
		var start uint32
		if r.Range != nil {
			start = r.Range.Start
		} else if r.Location != nil {
			start = r.Location.Index
		}
		require.LessOrEqual(t, start, lastStart)
		lastStart = start
	}
}

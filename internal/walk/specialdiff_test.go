package walk

import (
	"testing"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/changetree"
	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/stretchr/testify/require"
)

// S6: a footnote reference inserted mid-paragraph with otherwise identical
// text emits a single CreateFootnote at the reference's offset, not a
// delete-then-insert of the whole paragraph.
func TestWalkSegmentFootnoteReferenceInsertedMidParagraph(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>See details.</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>See</r><footnoteRef ref="fn1"/><r> details.</r></p></body></document>`)

	seg := pristine.Tabs[0].Body
	nodes, _, err := changetree.BuildSegment(seg.Blocks, current.Tabs[0].Body.Blocks, seg.SegmentEnd, "body")
	require.NoError(t, err)

	records, warnings, err := WalkSegment(nodes, seg.SegmentEnd, reqgen.Literal("body"), reqgen.Literal("t1"), Options{
		StrictSectionBreaks: true,
		NewFootnoteIDs:      map[string]bool{"fn1": true},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, records, 1)
	require.Equal(t, reqgen.OpCreateFootnote, records[0].Op)
	// "See" = 3 units, paragraph starts at pristine index 1 (after the
	// section break), so the reference sits at index 4.
	require.Equal(t, uint32(4), records[0].Location.Index)
}

func TestTrySpecialOnlyEditFallsBackWhenTextDiffers(t *testing.T) {
	p := &blocktree.Block{StartIndex: 1, EndIndex: 5, Paragraph: &blocktree.Paragraph{Content: []blocktree.ParaContent{{Run: &blocktree.Run{Text: "Hi"}}}}}
	c := &blocktree.Block{StartIndex: 1, EndIndex: 6, Paragraph: &blocktree.Paragraph{Content: []blocktree.ParaContent{{Run: &blocktree.Run{Text: "Hey"}}}}}
	_, ok := trySpecialOnlyEdit(p, c, reqgen.Literal("body"), reqgen.Literal("t1"), nil)
	require.False(t, ok)
}

func TestTrySpecialOnlyEditDeletesRemovedSpecial(t *testing.T) {
	p := &blocktree.Block{StartIndex: 1, EndIndex: 10, Paragraph: &blocktree.Paragraph{Content: []blocktree.ParaContent{
		{Run: &blocktree.Run{Text: "A"}},
		{Special: &blocktree.Special{Kind: "pageBreak"}},
		{Run: &blocktree.Run{Text: "B"}},
	}}}
	c := &blocktree.Block{StartIndex: 1, EndIndex: 9, Paragraph: &blocktree.Paragraph{Content: []blocktree.ParaContent{
		{Run: &blocktree.Run{Text: "A"}},
		{Run: &blocktree.Run{Text: "B"}},
	}}}
	recs, ok := trySpecialOnlyEdit(p, c, reqgen.Literal("body"), reqgen.Literal("t1"), nil)
	require.True(t, ok)
	require.Len(t, recs, 1)
	require.Equal(t, reqgen.OpDeleteRange, recs[0].Op)
	require.Equal(t, uint32(2), recs[0].Range.Start)
	require.Equal(t, uint32(3), recs[0].Range.End)
}

func TestDocxmlParsesFootnoteRefSpecial(t *testing.T) {
	xdoc, err := docxml.Parse([]byte(`<document><body><p tag="normal"><r>a</r><footnoteRef ref="x"/></p></body></document>`))
	require.NoError(t, err)
	require.Len(t, xdoc.Body.Blocks, 1)
	content := xdoc.Body.Blocks[0].Paragraph.Content
	require.Len(t, content, 2)
	require.Equal(t, "footnoteRef", content[1].Special.Kind)
	require.Equal(t, "x", content[1].Special.Ref)
}

package changetree

import (
	"testing"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, xmlSrc string) *blocktree.Document {
	t.Helper()
	xdoc, err := docxml.Parse([]byte(xmlSrc))
	require.NoError(t, err)
	doc, err := blocktree.Build(xdoc, true)
	require.NoError(t, err)
	return doc
}

// S1: mid-paragraph text edit produces exactly one ContentBlock(Modified).
func TestBuildSegmentMidParagraphEdit(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>Hello world</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>Hello, cruel world</r></p></body></document>`)

	pb := pristine.Tabs[0].Body.Blocks
	cb := current.Tabs[0].Body.Blocks
	nodes, warnings, err := BuildSegment(pb, cb, pristine.Tabs[0].Body.SegmentEnd, "body")
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, nodes, 1)
	require.Equal(t, KindContentBlock, nodes[0].Kind)
	require.Equal(t, Modified, nodes[0].Op)
}

// S2: append paragraph at segment end is Added with insertion point at the
// last pristine block's end.
func TestBuildSegmentAppendAtEnd(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p></body></document>`)

	pb := pristine.Tabs[0].Body.Blocks
	cb := current.Tabs[0].Body.Blocks
	nodes, _, err := BuildSegment(pb, cb, pristine.Tabs[0].Body.SegmentEnd, "body")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, Added, nodes[0].Op)
	require.Equal(t, pristine.Tabs[0].Body.SegmentEnd, nodes[0].PristineStart)
	require.Equal(t, nodes[0].PristineStart, nodes[0].PristineEnd)
}

// S3: delete middle paragraph among three yields a single Deleted node for
// just that paragraph, unchanged paragraphs produce no nodes.
func TestBuildSegmentDeleteMiddle(t *testing.T) {
	pristine := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p><p tag="normal"><r>C</r></p></body></document>`)
	current := build(t, `<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>C</r></p></body></document>`)

	pb := pristine.Tabs[0].Body.Blocks
	cb := current.Tabs[0].Body.Blocks
	nodes, _, err := BuildSegment(pb, cb, pristine.Tabs[0].Body.SegmentEnd, "body")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, Deleted, nodes[0].Op)
	require.Equal(t, "B", nodes[0].PristineBlocks[0].Paragraph.PlainText())
}

func TestBuildSegmentTOCProducesWarningNotNode(t *testing.T) {
	pristine := build(t, `<document><body><toc>old</toc></body></document>`)
	current := build(t, `<document><body><toc>new</toc></body></document>`)

	pb := pristine.Tabs[0].Body.Blocks
	cb := current.Tabs[0].Body.Blocks
	nodes, warnings, err := BuildSegment(pb, cb, pristine.Tabs[0].Body.SegmentEnd, "body")
	require.NoError(t, err)
	require.Empty(t, nodes)
	require.Len(t, warnings, 1)
}

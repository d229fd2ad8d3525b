package deferredid

import (
	"testing"

	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/walk"
	"github.com/stretchr/testify/require"

	"github.com/extradoc/extradoc/internal/blocktree"
)

// PopulateNewSegment diffs the server's post-creation empty segment (one
// sentinel newline, no blocks) against the desired footer content, so it
// should emit a single InsertText for all the desired text.
func TestPopulateNewSegmentEmitsInsertForAllDesiredContent(t *testing.T) {
	src := `<document><body><sectionBreak/><p tag="normal"><r>Page 1</r></p></body></document>`
	xdoc, err := docxml.Parse([]byte(src))
	require.NoError(t, err)
	doc, err := blocktree.Build(xdoc, false)
	require.NoError(t, err)

	desired := doc.Tabs[0].Body.Blocks[1:] // skip the section break, keep the paragraph

	records, warnings, err := PopulateNewSegment(desired, reqgen.Literal("footer-new"), reqgen.Literal("t1"), walk.Options{})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, records, 3)
	require.Equal(t, reqgen.OpInsertText, records[0].Op)
	require.Equal(t, "Page 1", records[0].Text)
	require.Equal(t, uint32(0), records[0].Location.Index)
	require.Equal(t, reqgen.OpUpdateTextStyle, records[1].Op)
	require.Equal(t, reqgen.OpUpdateParagraphStyle, records[2].Op)
}

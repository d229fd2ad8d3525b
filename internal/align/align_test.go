package align

import (
	"testing"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/stretchr/testify/require"
)

func para(tag, text string) *blocktree.Block {
	p := &blocktree.Paragraph{Tag: tag, Content: []blocktree.ParaContent{{Run: &blocktree.Run{Text: text}}}}
	return &blocktree.Block{Kind: blocktree.BlockParagraph, Paragraph: p, Hash: "h:" + tag + ":" + text}
}

func TestAlignExactHashUnchanged(t *testing.T) {
	pristine := []*blocktree.Block{para("normal", "A"), para("normal", "B")}
	current := []*blocktree.Block{para("normal", "A"), para("normal", "B")}

	pairs := Align(pristine, current)
	require.Len(t, pairs, 2)
	require.Equal(t, Unchanged, pairs[0].Op)
	require.Equal(t, Unchanged, pairs[1].Op)
}

func TestAlignStructuralPassMarksModified(t *testing.T) {
	pristine := []*blocktree.Block{para("normal", "old text")}
	current := []*blocktree.Block{para("normal", "new text")}

	pairs := Align(pristine, current)
	require.Len(t, pairs, 1)
	require.Equal(t, Modified, pairs[0].Op)
}

func TestAlignSameTagReplacementIsModified(t *testing.T) {
	pristine := []*blocktree.Block{para("normal", "A"), para("normal", "B")}
	current := []*blocktree.Block{para("normal", "A"), para("normal", "C")}

	pairs := Align(pristine, current)
	// A is unchanged; B and C share the "normal" tag, so the structural
	// pass pairs them as Modified rather than Deleted + Added.
	require.Len(t, pairs, 2)
	require.Equal(t, Unchanged, pairs[0].Op)
	require.Equal(t, Modified, pairs[1].Op)
}

func TestAlignDeletedInterleavedAtPristinePosition(t *testing.T) {
	pristine := []*blocktree.Block{para("normal", "A"), para("heading1", "GONE"), para("normal", "B")}
	current := []*blocktree.Block{para("normal", "A"), para("normal", "B")}

	pairs := Align(pristine, current)
	require.Len(t, pairs, 3)
	require.Equal(t, Unchanged, pairs[0].Op)
	require.Equal(t, Deleted, pairs[1].Op)
	require.Equal(t, "GONE", pairs[1].Pristine.Paragraph.PlainText())
	require.Equal(t, Unchanged, pairs[2].Op)
}

func TestAlignByIDUnchangedWhenIdentical(t *testing.T) {
	pairs := AlignByID([]string{"r1", "r2", "r3"}, []string{"r1", "r2", "r3"})
	require.Len(t, pairs, 3)
	for _, p := range pairs {
		require.Equal(t, Unchanged, p.Op)
	}
}

func TestAlignByIDDetectsInsertedRow(t *testing.T) {
	pairs := AlignByID([]string{"r1", "r3"}, []string{"r1", "r2", "r3"})
	require.Len(t, pairs, 3)
	require.Equal(t, Unchanged, pairs[0].Op)
	require.Equal(t, Added, pairs[1].Op)
	require.Equal(t, Unchanged, pairs[2].Op)
}

func TestAlignByIDDetectsDeletedRow(t *testing.T) {
	pairs := AlignByID([]string{"r1", "r2", "r3"}, []string{"r1", "r3"})
	require.Len(t, pairs, 3)
	require.Equal(t, Unchanged, pairs[0].Op)
	require.Equal(t, Deleted, pairs[1].Op)
	require.Equal(t, Unchanged, pairs[2].Op)
}

func TestAlignByIDPositionalFallbackOnCompleteReplacement(t *testing.T) {
	// No shared ids at all: LCS finds zero matches, so fall back to
	// positional pairing rather than an all-delete-all-add result.
	pairs := AlignByID([]string{"r1", "r2"}, []string{"x1", "x2"})
	require.Len(t, pairs, 2)
	require.Equal(t, Modified, pairs[0].Op)
	require.Equal(t, Modified, pairs[1].Op)
	require.Equal(t, 0, pairs[0].PristineIndex)
	require.Equal(t, 0, pairs[0].CurrentIndex)
}

func TestAlignByIDDuplicateRowIDsMatchPositionally(t *testing.T) {
	pairs := AlignByID([]string{"dup", "dup"}, []string{"dup", "dup"})
	require.Len(t, pairs, 2)
	require.Equal(t, 0, pairs[0].PristineIndex)
	require.Equal(t, 0, pairs[0].CurrentIndex)
	require.Equal(t, 1, pairs[1].PristineIndex)
	require.Equal(t, 1, pairs[1].CurrentIndex)
}

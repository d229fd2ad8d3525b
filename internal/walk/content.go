package walk

import (
	"strings"

	"github.com/extradoc/extradoc/internal/blocktree"
)

// concatParagraphs flattens a run of paragraph blocks into the text an
// InsertText request carries, each terminated by its own newline (the
// paragraph terminator already accounted for in its pristine length) and
// returns the tag of the last paragraph, used to pick the namedStyleType
// normalization applied to the whole inserted range.
func concatParagraphs(blocks []*blocktree.Block) (string, string) {
	var b strings.Builder
	lastTag := "normal"
	for _, blk := range blocks {
		if blk.Kind != blocktree.BlockParagraph {
			continue
		}
		b.WriteString(blk.Paragraph.PlainText())
		b.WriteString("\n")
		lastTag = blk.Paragraph.Tag
	}
	return b.String(), lastTag
}

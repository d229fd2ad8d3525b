package deferredid

import (
	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/changetree"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/walk"
)

// PopulateNewSegment builds the records that fill a just-created header,
// footer, or footnote with desired content. The server creates the new
// segment containing a single sentinel newline and nothing else (spec.md
// §4.7); diffing that one-paragraph empty state against desired reuses the
// same Change Tree Builder and Backwards Walk as an ordinary segment edit,
// rather than a bespoke "build from scratch" path. The pristine side is
// always nil blocks with segment_end=1, matching what the server hands
// back for a brand new segment.
func PopulateNewSegment(desired []*blocktree.Block, segmentID, tabID reqgen.ID, opts walk.Options) ([]*reqgen.Record, []walk.Warning, error) {
	nodes, warnings, err := changetree.BuildSegment(nil, desired, 1, "new_segment")
	if err != nil {
		return nil, nil, err
	}
	records, walkWarnings, err := walk.WalkSegment(nodes, 1, segmentID, tabID, opts)
	if err != nil {
		return nil, nil, err
	}
	return records, append(warnings, walkWarnings...), nil
}

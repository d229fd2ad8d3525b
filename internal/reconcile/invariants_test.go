package reconcile

import (
	"testing"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/stretchr/testify/require"
)

// fixtures used across the invariant checks below, one per structural
// shape already exercised by the scenario tests in reconcile_test.go.
var invariantFixtures = []struct {
	name              string
	pristine, current []byte
}{
	{
		name:     "mid-paragraph edit",
		pristine: []byte(`<document><body><sectionBreak/><p tag="normal"><r>Hello world</r></p></body></document>`),
		current:  []byte(`<document><body><sectionBreak/><p tag="normal"><r>Hello, cruel world</r></p></body></document>`),
	},
	{
		name:     "append at segment end",
		pristine: []byte(`<document><body><sectionBreak/><p tag="normal"><r>A</r></p></body></document>`),
		current:  []byte(`<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p></body></document>`),
	},
	{
		name:     "delete middle paragraph",
		pristine: []byte(`<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>B</r></p><p tag="normal"><r>C</r></p></body></document>`),
		current:  []byte(`<document><body><sectionBreak/><p tag="normal"><r>A</r></p><p tag="normal"><r>C</r></p></body></document>`),
	},
	{
		name:     "no change",
		pristine: []byte(`<document><body><sectionBreak/><p tag="normal"><r>Same text</r></p></body></document>`),
		current:  []byte(`<document><body><sectionBreak/><p tag="normal"><r>Same text</r></p></body></document>`),
	},
}

// Invariant 1: reconcile(D, D) = [] for every fixture, not just one.
func TestInvariantIdempotenceOnEquality(t *testing.T) {
	for _, f := range invariantFixtures {
		res, err := Reconcile(f.pristine, f.pristine, DefaultConfig())
		require.NoError(t, err, f.name)
		for _, batch := range res.Batches {
			require.Empty(t, batch, f.name)
		}
	}
}

// Invariant 3: determinism. Running the same inputs twice must produce
// bit-identical batches (same op, same fields, same order).
func TestInvariantDeterminism(t *testing.T) {
	for _, f := range invariantFixtures {
		a, err := Reconcile(f.pristine, f.current, DefaultConfig())
		require.NoError(t, err, f.name)
		b, err := Reconcile(f.pristine, f.current, DefaultConfig())
		require.NoError(t, err, f.name)
		require.Equal(t, a.Batches, b.Batches, f.name)
	}
}

// Invariant 4: no emitted DeleteRange ever reaches the segment-end
// sentinel newline.
func TestInvariantNoSentinelDeletion(t *testing.T) {
	for _, f := range invariantFixtures {
		res, err := Reconcile(f.pristine, f.current, DefaultConfig())
		require.NoError(t, err, f.name)
		segmentEnd := bodySegmentEnd(t, f.pristine)
		for _, batch := range res.Batches {
			for _, rec := range batch {
				if rec.Op != reqgen.OpDeleteRange {
					continue
				}
				require.LessOrEqual(t, rec.Range.End, segmentEnd-1, f.name)
			}
		}
	}
}

// Invariant 5: within a segment, adjacent emitted records walk backwards
// (descending start index), since the emitter is a single backwards pass.
func TestInvariantMonotoneSegmentOrder(t *testing.T) {
	for _, f := range invariantFixtures {
		res, err := Reconcile(f.pristine, f.current, DefaultConfig())
		require.NoError(t, err, f.name)
		for _, batch := range res.Batches {
			var prevStart *uint32
			for _, rec := range batch {
				start, ok := startIndex(rec)
				if !ok {
					continue
				}
				if prevStart != nil {
					require.GreaterOrEqual(t, *prevStart, start, f.name)
				}
				prevStart = &start
			}
		}
	}
}

// Invariant 7: every placeholder embedded anywhere in the batch plan
// refers to a request index that actually exists in its target batch.
func TestInvariantPlaceholderResolvability(t *testing.T) {
	pristine := []byte(`<document><body><sectionBreak/><p tag="normal"><r>See details.</r></p></body></document>`)
	current := []byte(`<document><tab id="tab-default">
    <body><sectionBreak/><p tag="normal"><r>See</r><footnoteRef ref="fn1"/><r> details.</r></p></body>
    <footnote id="fn1"><body><p tag="normal"><r>Extra.</r></p></body></footnote>
  </tab></document>`)

	res, err := Reconcile(pristine, current, DefaultConfig())
	require.NoError(t, err)

	for _, batch := range res.Batches {
		for _, rec := range batch {
			for _, id := range referencedIDs(rec) {
				if id.Placeholder == nil {
					continue
				}
				p := id.Placeholder
				require.GreaterOrEqual(t, p.BatchIndex, 0)
				require.Less(t, p.BatchIndex, len(res.Batches))
				require.GreaterOrEqual(t, p.RequestIndexWithinBatch, 0)
				require.Less(t, p.RequestIndexWithinBatch, len(res.Batches[p.BatchIndex]))
			}
		}
	}
}

// Invariant 8: UTF-16 correctness. The inserted text round-trips with no
// truncation or mangling of its non-ASCII runes, and the style range laid
// over it advances by its UTF-16 length: "café 北京" is 7 units ("café" 4,
// the space 1, the two BMP CJK characters 2).
func TestInvariantUTF16AdvancesIndices(t *testing.T) {
	pristine := []byte(`<document><body><sectionBreak/><p tag="normal"><r>caf</r></p></body></document>`)
	current := []byte(`<document><body><sectionBreak/><p tag="normal"><r>café 北京</r></p></body></document>`)

	res, err := Reconcile(pristine, current, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.Batches, 1)
	var inserted string
	for _, rec := range res.Batches[0] {
		switch rec.Op {
		case reqgen.OpInsertText:
			require.NotEmpty(t, rec.Text)
			inserted = rec.Text
		case reqgen.OpUpdateTextStyle:
			require.Equal(t, uint32(7), rec.Range.End-rec.Range.Start)
		}
	}
	require.Equal(t, "café 北京", inserted)
}

func startIndex(rec *reqgen.Record) (uint32, bool) {
	switch rec.Op {
	case reqgen.OpInsertText, reqgen.OpCreateHeader, reqgen.OpCreateFooter, reqgen.OpCreateFootnote, reqgen.OpInsertSpecial:
		if rec.Location != nil {
			return rec.Location.Index, true
		}
	case reqgen.OpDeleteRange, reqgen.OpUpdateTextStyle, reqgen.OpUpdateParagraphStyle, reqgen.OpCreateBullets, reqgen.OpDeleteBullets:
		if rec.Range != nil {
			return rec.Range.Start, true
		}
	}
	return 0, false
}

func referencedIDs(rec *reqgen.Record) []reqgen.ID {
	var ids []reqgen.ID
	if rec.Location != nil {
		ids = append(ids, rec.Location.SegmentID, rec.Location.TabID)
	}
	if rec.Range != nil {
		ids = append(ids, rec.Range.SegmentID, rec.Range.TabID)
	}
	return ids
}

// bodySegmentEnd parses pristineXML through the same docxml/blocktree
// pipeline Reconcile uses and returns the body segment's SegmentEnd, so
// the sentinel check compares against the actual Index Model output
// rather than a hand-computed length.
func bodySegmentEnd(t *testing.T, pristineXML []byte) uint32 {
	t.Helper()
	doc, err := docxml.Parse(pristineXML)
	require.NoError(t, err)
	built, err := blocktree.Build(doc, true)
	require.NoError(t, err)
	require.NotEmpty(t, built.Tabs)
	require.NotNil(t, built.Tabs[0].Body)
	return built.Tabs[0].Body.SegmentEnd
}

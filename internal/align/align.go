// Package align implements the Aligner (spec.md §4.3): two-pass matching
// of blocktree blocks within one segment, producing an ordered alignment
// list the Change Tree Builder (internal/changetree) walks directly.
package align

import (
	"github.com/extradoc/extradoc/internal/blocktree"
)

// Op classifies one alignment entry.
type Op int

const (
	Unchanged Op = iota
	Added
	Deleted
	Modified
)

func (o Op) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Pair is one aligned entry. Pristine/Current are nil when the entry has
// no counterpart on that side (Added has no Pristine, Deleted has no
// Current).
type Pair struct {
	Op        Op
	Pristine  *blocktree.Block
	Current   *blocktree.Block
}

// structuralKey returns the Structural-pass matching key (spec.md §4.3):
// paragraph tag, or "table", "toc", "section_break".
func structuralKey(b *blocktree.Block) string {
	switch b.Kind {
	case blocktree.BlockParagraph:
		return "p:" + b.Paragraph.Tag
	case blocktree.BlockTable:
		return "table"
	case blocktree.BlockTOC:
		return "toc"
	case blocktree.BlockSectionBreak:
		return "section_break"
	default:
		return "unknown"
	}
}

// Align runs the two-pass algorithm over one segment's pristine and
// current block lists, returning the alignment ordered by current-document
// position with Deleted entries interleaved at their pristine positions.
func Align(pristine, current []*blocktree.Block) []Pair {
	pristineMatched := make([]bool, len(pristine))
	currentMatched := make([]bool, len(current))
	matchOf := make([]int, len(current)) // index into pristine, or -1
	for i := range matchOf {
		matchOf[i] = -1
	}

	// Pass 1: exact-hash. For each current block in order, match to any
	// unmatched pristine block with identical hash.
	for ci, cb := range current {
		for pi, pb := range pristine {
			if pristineMatched[pi] {
				continue
			}
			if pb.Hash == cb.Hash {
				pristineMatched[pi] = true
				currentMatched[ci] = true
				matchOf[ci] = pi
				break
			}
		}
	}

	// Pass 2: structural. For each remaining current block in order, match
	// to the first unmatched pristine block with the same structural key.
	for ci, cb := range current {
		if currentMatched[ci] {
			continue
		}
		key := structuralKey(cb)
		for pi, pb := range pristine {
			if pristineMatched[pi] {
				continue
			}
			if structuralKey(pb) == key {
				pristineMatched[pi] = true
				currentMatched[ci] = true
				matchOf[ci] = pi
				break
			}
		}
	}

	// Build the result ordered by current-document position, interleaving
	// unmatched (Deleted) pristine blocks at their pristine positions. We
	// walk current in order; before emitting a matched current entry, we
	// flush any Deleted pristine blocks whose pristine index is less than
	// the about-to-be-emitted match's pristine index. Added entries are
	// appended in place without a flush.
	var pairs []Pair
	nextUnflushed := 0
	flushDeletedUpTo := func(pristineIdx int) {
		for nextUnflushed < pristineIdx {
			if !pristineMatched[nextUnflushed] {
				pairs = append(pairs, Pair{Op: Deleted, Pristine: pristine[nextUnflushed]})
			}
			nextUnflushed++
		}
	}

	for ci, cb := range current {
		pi := matchOf[ci]
		if pi == -1 {
			pairs = append(pairs, Pair{Op: Added, Current: cb})
			continue
		}
		flushDeletedUpTo(pi)
		pb := pristine[pi]
		op := Unchanged
		if pb.Hash != cb.Hash {
			op = Modified
		}
		pairs = append(pairs, Pair{Op: op, Pristine: pb, Current: cb})
		if nextUnflushed <= pi {
			nextUnflushed = pi + 1
		}
	}
	flushDeletedUpTo(len(pristine))

	return pairs
}

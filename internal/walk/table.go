package walk

import (
	"sort"

	"github.com/extradoc/extradoc/internal/changetree"
	"github.com/extradoc/extradoc/internal/reqgen"
)

// walkTable emits a Modified/Added/Deleted table's records in the exact
// phase order spec.md §4.6 requires: column deletions (highest index
// first), then row deletions/modified-row cell edits interleaved
// bottom-to-top, then column insertions (highest first), then row
// insertions (highest first), then column width updates.
func walkTable(n *changetree.Node, segmentEnd uint32, segmentID, tabID reqgen.ID, opts Options, consumed *bool) ([]*reqgen.Record, []Warning, error) {
	switch n.Op {
	case changetree.Added:
		rows, cols := tableDimensions(n)
		return []*reqgen.Record{reqgen.InsertTable(n.PristineStart, rows, cols, segmentID, tabID)}, nil, nil

	case changetree.Deleted:
		rec := reqgen.DeleteRangeClamped(n.PristineStart, n.PristineEnd, segmentEnd, segmentID, tabID)
		if rec == nil {
			return nil, nil, nil
		}
		return []*reqgen.Record{rec}, nil, nil

	default: // Modified
		return walkModifiedTable(n, segmentID, tabID, opts, consumed)
	}
}

func tableDimensions(n *changetree.Node) (rows, cols int) {
	cols = len(n.ColIDs)
	if len(n.CurrentBlocks) == 1 && n.CurrentBlocks[0].Table != nil {
		rows = len(n.CurrentBlocks[0].Table.Rows)
	}
	return
}

func walkModifiedTable(n *changetree.Node, segmentID, tabID reqgen.ID, opts Options, consumed *bool) ([]*reqgen.Record, []Warning, error) {
	var deletedCols, insertedCols []*changetree.Node
	var deletedRows, modifiedRows, insertedRows []*changetree.Node

	for _, c := range n.Children {
		switch c.Kind {
		case changetree.KindTableColumn:
			if c.Op == changetree.Deleted {
				deletedCols = append(deletedCols, c)
			} else {
				insertedCols = append(insertedCols, c)
			}
		case changetree.KindTableRow:
			switch c.Op {
			case changetree.Deleted:
				deletedRows = append(deletedRows, c)
			case changetree.Added:
				insertedRows = append(insertedRows, c)
			case changetree.Modified:
				modifiedRows = append(modifiedRows, c)
			}
		}
	}

	var records []*reqgen.Record
	var warnings []Warning

	// Phase 1: column deletions, highest index first.
	sortDescByColIndex(deletedCols)
	for _, c := range deletedCols {
		records = append(records, reqgen.DeleteTableColumn(n.TableStart, c.ColIndex, segmentID, tabID))
	}

	// Phase 2: row deletions + modified-row cell edits, interleaved,
	// bottom-to-top by row; within a modified row cells walk right-to-left
	// (WalkSegment already emits each cell in descending pristine order).
	combined := append(append([]*changetree.Node(nil), deletedRows...), modifiedRows...)
	sortDescByRowIndex(combined)
	for _, r := range combined {
		if r.Op == changetree.Deleted {
			records = append(records, reqgen.DeleteTableRow(n.TableStart, r.RowIndex, segmentID, tabID))
			continue
		}
		for i := len(r.Children) - 1; i >= 0; i-- {
			cell := r.Children[i]
			cellRecs, cellWarns, err := walkCellChildren(cell, segmentID, tabID, opts, consumed)
			if err != nil {
				return nil, nil, err
			}
			records = append(records, cellRecs...)
			warnings = append(warnings, cellWarns...)
		}
	}

	// Phase 3: column insertions, highest first. Each new column goes to
	// the right of the column before it (left of column 0 when it becomes
	// the first column). Only the InsertTableColumn request is emitted:
	// the new column's cells are not populated, and no tracked per-row
	// length table is kept.
	sortDescByColIndex(insertedCols)
	for _, c := range insertedCols {
		colRef, right := c.ColIndex-1, true
		if c.ColIndex == 0 {
			colRef, right = 0, false
		}
		records = append(records, reqgen.InsertTableColumn(n.TableStart, 0, colRef, right, segmentID, tabID))
	}

	// Phase 4: row insertions, highest first. Each new row goes below the
	// row before it (above row 0 when it becomes the first row).
	sortDescByRowIndex(insertedRows)
	for _, r := range insertedRows {
		rowRef, below := r.RowIndex-1, true
		if r.RowIndex == 0 {
			rowRef, below = 0, false
		}
		rec := reqgen.InsertTableRow(n.TableStart, rowRef, below, segmentID, tabID)
		rec.StripTrailingNewline = true
		records = append(records, rec)
	}

	// Phase 5: column width updates are driven by explicit width changes
	// recorded on the table node, which the change tree builder does not
	// currently surface (no width field in blocktree.Table); nothing to
	// emit here until that's wired in.

	return records, warnings, nil
}

// walkCellChildren walks one cell's changed children as its own
// mini-segment, in descending pristine-index order (the same invariant
// WalkSegment enforces at the top level) so that edits within a cell
// never shift indices out from under a not-yet-emitted sibling.
func walkCellChildren(cell *changetree.Node, segmentID, tabID reqgen.ID, opts Options, consumed *bool) ([]*reqgen.Record, []Warning, error) {
	ordered := append([]*changetree.Node(nil), cell.Children...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PristineStart > ordered[j].PristineStart
	})

	cellConsumed := false
	var records []*reqgen.Record
	var warnings []Warning
	for _, child := range ordered {
		recs, warns, err := walkNode(child, cell.PristineEnd, segmentID, tabID, opts, &cellConsumed)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, recs...)
		warnings = append(warnings, warns...)
	}
	return records, warnings, nil
}

func sortDescByColIndex(nodes []*changetree.Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1].ColIndex < nodes[j].ColIndex; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}

func sortDescByRowIndex(nodes []*changetree.Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1].RowIndex < nodes[j].RowIndex; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}

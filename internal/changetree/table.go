package changetree

import (
	"fmt"

	"github.com/extradoc/extradoc/internal/align"
	"github.com/extradoc/extradoc/internal/blocktree"
)

// buildTableNode classifies one table alignment pair as Unchanged (never
// reached here; caller filters those out), Added, Deleted, or Modified,
// and for Modified recursively aligns rows, columns, and matched cells
// (spec.md §4.4 "Modified tables are recursively aligned").
func buildTableNode(p align.Pair, lastPristineEnd uint32, path string) (*Node, []Warning, error) {
	switch p.Op {
	case Added:
		node := &Node{
			Kind:          KindTable,
			Op:            Added,
			PristineStart: lastPristineEnd,
			PristineEnd:   lastPristineEnd,
			CurrentBlocks: []*blocktree.Block{p.Current},
			ColIDs:        append([]string(nil), p.Current.Table.ColIDs...),
		}
		return node, nil, nil

	case Deleted:
		node := &Node{
			Kind:           KindTable,
			Op:             Deleted,
			PristineStart:  p.Pristine.StartIndex,
			PristineEnd:    p.Pristine.EndIndex,
			PristineBlocks: []*blocktree.Block{p.Pristine},
			TableStart:     p.Pristine.Table.TableStart,
			ColIDs:         append([]string(nil), p.Pristine.Table.ColIDs...),
		}
		return node, nil, nil

	default: // Modified
		return buildModifiedTable(p, path)
	}
}

func buildModifiedTable(p align.Pair, path string) (*Node, []Warning, error) {
	pt := p.Pristine.Table
	ct := p.Current.Table

	node := &Node{
		Kind:           KindTable,
		Op:             Modified,
		PristineStart:  p.Pristine.StartIndex,
		PristineEnd:    p.Pristine.EndIndex,
		PristineBlocks: []*blocktree.Block{p.Pristine},
		CurrentBlocks:  []*blocktree.Block{p.Current},
		TableStart:     pt.TableStart,
		ColIDs:         append([]string(nil), ct.ColIDs...),
	}

	var warnings []Warning

	colPairs := align.AlignByID(pt.ColIDs, ct.ColIDs)
	for _, cp := range colPairs {
		if cp.Op == Unchanged {
			continue
		}
		child := &Node{Kind: KindTableColumn, Op: cp.Op, TableStart: pt.TableStart}
		if cp.PristineIndex >= 0 {
			child.NodeID = pt.ColIDs[cp.PristineIndex]
			child.ColIndex = cp.PristineIndex
		} else {
			child.NodeID = ct.ColIDs[cp.CurrentIndex]
			child.ColIndex = cp.CurrentIndex
		}
		node.Children = append(node.Children, child)
	}

	pRowIDs := make([]string, len(pt.Rows))
	for i, r := range pt.Rows {
		pRowIDs[i] = r.RowID
	}
	cRowIDs := make([]string, len(ct.Rows))
	for i, r := range ct.Rows {
		cRowIDs[i] = r.RowID
	}
	rowPairs := align.AlignByID(pRowIDs, cRowIDs)

	for _, rp := range rowPairs {
		switch rp.Op {
		case Added:
			row := ct.Rows[rp.CurrentIndex]
			node.Children = append(node.Children, &Node{
				Kind:       KindTableRow,
				Op:         Added,
				NodeID:     row.RowID,
				TableStart: pt.TableStart,
				RowIndex:   rp.CurrentIndex,
			})
		case Deleted:
			row := pt.Rows[rp.PristineIndex]
			node.Children = append(node.Children, &Node{
				Kind:          KindTableRow,
				Op:            Deleted,
				NodeID:        row.RowID,
				PristineStart: row.StartIndex,
				TableStart:    pt.TableStart,
				RowIndex:      rp.PristineIndex,
			})
		case Unchanged, Modified:
			// A row matched by id (Unchanged from AlignByID's view) still
			// needs its cells compared: id stability says nothing about
			// content (spec.md §4.4 "matched cells with differing content
			// recursed into"). Genuinely identical rows are skipped here.
			pr, cr := pt.Rows[rp.PristineIndex], ct.Rows[rp.CurrentIndex]
			if rp.Op == Unchanged && rowsEqual(pr, cr) {
				continue
			}
			rowNode, warns, err := buildModifiedRow(pr, cr, pt.TableStart, fmt.Sprintf("%s.row[%d]", path, rp.PristineIndex))
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, warns...)
			if rowNode != nil {
				rowNode.RowIndex = rp.PristineIndex
				node.Children = append(node.Children, rowNode)
			}
		}
	}

	return node, warnings, nil
}

// rowsEqual reports whether two id-matched rows have identical content, by
// comparing each cell's blocks via the same content hash the exact-hash
// alignment pass uses (internal/align). Cell count and column ids must
// also match: AlignByID pairs rows by row id alone, so a row touched by a
// column insertion or deletion still arrives here as Unchanged, and this
// check is what reports it as differing.
func rowsEqual(pr, cr blocktree.TableRow) bool {
	if len(pr.Cells) != len(cr.Cells) {
		return false
	}
	for i := range pr.Cells {
		if pr.Cells[i].ColID != cr.Cells[i].ColID {
			return false
		}
		if !blocksEqual(pr.Cells[i].Blocks, cr.Cells[i].Blocks) {
			return false
		}
	}
	return true
}

func blocksEqual(a, b []*blocktree.Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Hash != b[i].Hash {
			return false
		}
	}
	return true
}

// buildModifiedRow diffs two row's cells by column id (a row's cells are
// already aligned with the row's own id, so column id alone disambiguates
// cell identity per spec.md §3 "cell identity is (row id, column
// position)").
func buildModifiedRow(pr, cr blocktree.TableRow, tableStart uint32, path string) (*Node, []Warning, error) {
	row := &Node{Kind: KindTableRow, Op: Modified, NodeID: pr.RowID, PristineStart: pr.StartIndex, TableStart: tableStart}
	var warnings []Warning

	cellByColID := make(map[string]blocktree.TableCell, len(pr.Cells))
	for _, c := range pr.Cells {
		cellByColID[c.ColID] = c
	}

	for _, cc := range cr.Cells {
		pc, ok := cellByColID[cc.ColID]
		if !ok {
			// Column was added in this same change; its cell population is
			// handled by the column-insertion phase in the request
			// generator, not here.
			continue
		}
		cellNodes, warns, err := BuildSegment(pc.Blocks, cc.Blocks, pc.EndIndex, fmt.Sprintf("%s.cell[%s]", path, cc.ColID))
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		if len(cellNodes) == 0 {
			continue
		}
		row.Children = append(row.Children, &Node{
			Kind:          KindTableCell,
			Op:            Modified,
			NodeID:        cc.ColID,
			PristineStart: pc.StartIndex,
			PristineEnd:   pc.EndIndex,
			Children:      cellNodes,
		})
	}

	if len(row.Children) == 0 {
		return nil, warnings, nil
	}
	return row, warnings, nil
}

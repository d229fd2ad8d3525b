package reqgen

import docsapi "google.golang.org/api/docs/v1"

// InsertTable yields a request for an empty rows x cols grid; each cell
// has content length 1 (the mandatory sentinel newline).
func InsertTable(index uint32, rows, cols int, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpInsertTable,
		Location: &Location{Index: index, SegmentID: segmentID, TabID: tabID},
		Rows:     rows,
		Cols:     cols,
	}
}

func InsertTableRow(tableStart uint32, rowRef int, below bool, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpInsertTableRow,
		Location: &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		RowRef:   rowRef,
		Below:    below,
	}
}

func DeleteTableRow(tableStart uint32, rowIndex int, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpDeleteTableRow,
		Location: &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		RowRef:   rowIndex,
	}
}

func InsertTableColumn(tableStart uint32, rowRef, colRef int, right bool, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpInsertTableColumn,
		Location: &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		RowRef:   rowRef,
		ColRef:   colRef,
		Right:    right,
	}
}

func DeleteTableColumn(tableStart uint32, colIndex int, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpDeleteTableColumn,
		Location: &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		ColRef:   colIndex,
	}
}

func MergeCells(tableStart uint32, rowSpan, colSpan int, originRow, originCol int, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpMergeCells,
		Location: &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		RowSpan:  rowSpan,
		ColSpan:  colSpan,
		Origin:   [2]int{originRow, originCol},
	}
}

func UnmergeCells(tableStart uint32, originRow, originCol int, segmentID, tabID ID) *Record {
	return &Record{
		Op:       OpUnmergeCells,
		Location: &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		Origin:   [2]int{originRow, originCol},
	}
}

func UpdateColumnWidth(tableStart uint32, colIndices []int, width float64, segmentID, tabID ID) *Record {
	return &Record{
		Op:         OpUpdateColumnWidth,
		Location:   &Location{Index: tableStart, SegmentID: segmentID, TabID: tabID},
		ColIndices: append([]int(nil), colIndices...),
		Width:      width,
	}
}

// CreateHeader/CreateFooter/CreateFootnote/tab lifecycle requests
// (segment/tab lifecycle, spec.md §4.6).

func CreateHeader(kind string, sectionBreakLocation *Location) *Record {
	return &Record{Op: OpCreateHeader, HeaderKind: kind, Location: sectionBreakLocation}
}

func DeleteHeader(id ID) *Record {
	return &Record{Op: OpDeleteHeader, Location: &Location{SegmentID: id}}
}

func CreateFooter(kind string, sectionBreakLocation *Location) *Record {
	return &Record{Op: OpCreateFooter, FooterKind: kind, Location: sectionBreakLocation}
}

func DeleteFooter(id ID) *Record {
	return &Record{Op: OpDeleteFooter, Location: &Location{SegmentID: id}}
}

// CreateFootnote's location is the pristine index of the footnote
// reference inside its containing paragraph, never end_of_segment
// (spec.md §4.6, S6). footnoteRef is the XML dialect's footnote id, kept
// on the record (not part of the wire payload) so the orchestrator can
// correlate this request's deferred response with the desired footnote
// body content it still needs to populate.
func CreateFootnote(refIndex uint32, footnoteRef string, segmentID, tabID ID) *Record {
	return &Record{Op: OpCreateFootnote, Location: &Location{Index: refIndex, SegmentID: segmentID, TabID: tabID}, FootnoteRef: footnoteRef}
}

func AddTab(insertionIndex int, properties *docsapi.TabProperties) *Record {
	return &Record{Op: OpAddTab, TabInsertionIndex: insertionIndex, TabProperties: properties}
}

func DeleteTab(id ID) *Record {
	return &Record{Op: OpDeleteTab, Location: &Location{TabID: id}}
}

func UpdateTabProperties(id ID, fields string) *Record {
	return &Record{Op: OpUpdateTabProperties, Location: &Location{TabID: id}, TabFields: fields}
}

// Package reqgen produces primitive, target-agnostic mutation records
// (spec.md §4.6, §6). Record payloads reuse google.golang.org/api/docs/v1
// types where the shapes line up, so a transport collaborator can lift
// fields straight into a real docs.Request without another translation
// layer.
package reqgen

import (
	docsapi "google.golang.org/api/docs/v1"
)

// OpKind enumerates MutationRecord kinds (spec.md §6).
type OpKind int

const (
	OpInsertText OpKind = iota
	OpDeleteRange
	OpUpdateTextStyle
	OpUpdateParagraphStyle
	OpCreateBullets
	OpDeleteBullets
	OpInsertSpecial
	OpInsertTable
	OpInsertTableRow
	OpDeleteTableRow
	OpInsertTableColumn
	OpDeleteTableColumn
	OpMergeCells
	OpUnmergeCells
	OpUpdateTableCellStyle
	OpUpdateColumnWidth
	OpCreateHeader
	OpDeleteHeader
	OpCreateFooter
	OpDeleteFooter
	OpCreateFootnote
	OpAddTab
	OpDeleteTab
	OpUpdateTabProperties
)

func (k OpKind) String() string {
	names := [...]string{
		"InsertText", "DeleteRange", "UpdateTextStyle", "UpdateParagraphStyle",
		"CreateBullets", "DeleteBullets", "InsertSpecial", "InsertTable",
		"InsertTableRow", "DeleteTableRow", "InsertTableColumn", "DeleteTableColumn",
		"MergeCells", "UnmergeCells", "UpdateTableCellStyle", "UpdateColumnWidth",
		"CreateHeader", "DeleteHeader", "CreateFooter", "DeleteFooter",
		"CreateFootnote", "AddTab", "DeleteTab", "UpdateTabProperties",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// ID is either a literal segment/tab id or an unresolved placeholder,
// filled in by internal/deferredid between batches.
type ID struct {
	Literal     string
	Placeholder *Placeholder
}

// Placeholder identifies a not-yet-assigned server id (spec.md §4.7).
type Placeholder struct {
	BatchIndex             int
	RequestIndexWithinBatch int
	ResponsePath           string
}

func Literal(id string) ID { return ID{Literal: id} }

// Location is a single index within one segment/tab.
type Location struct {
	Index     uint32
	SegmentID ID
	TabID     ID
}

// Range is a half-open [Start, End) span within one segment/tab.
type Range struct {
	Start     uint32
	End       uint32
	SegmentID ID
	TabID     ID
}

// Record is one primitive mutation (spec.md §6 MutationRecord).
type Record struct {
	Op       OpKind
	Location *Location
	Range    *Range
	Fields   string // comma-separated property path list, for style updates

	Text             string
	TextStyle        *docsapi.TextStyle
	ParagraphStyle   *docsapi.ParagraphStyle
	NamedStyleType   string
	BulletPreset     string
	SpecialKind      string
	SpecialAttrs     map[string]string
	StripTrailingNewline bool

	Rows, Cols int
	RowRef     int
	ColRef     int
	Below      bool
	Right      bool
	RowSpan    int
	ColSpan    int
	Origin     [2]int
	Width      float64
	ColIndices []int

	CellStyle *docsapi.TableCellStyle

	HeaderKind string
	FooterKind string

	TabInsertionIndex int
	TabProperties     *docsapi.TabProperties
	TabFields         string

	// FootnoteRef is set only on OpCreateFootnote records: the XML
	// dialect's footnote id, carried for orchestration bookkeeping (see
	// CreateFootnote), not part of the Docs API payload.
	FootnoteRef string
}

// DeleteRangeClamped builds a DeleteRange record, clamping end to
// segmentEnd-1 so the terminal newline sentinel is never included
// (spec.md §4.6, §8 invariant 4). Returns nil if the clamp collapses the
// range to empty.
func DeleteRangeClamped(start, end, segmentEnd uint32, segmentID, tabID ID) *Record {
	maxEnd := segmentEnd - 1
	if end > maxEnd {
		end = maxEnd
	}
	if start >= end {
		return nil
	}
	return &Record{
		Op:    OpDeleteRange,
		Range: &Range{Start: start, End: end, SegmentID: segmentID, TabID: tabID},
	}
}

// InsertText builds an InsertText record. consumed reports whether the
// segment-end sentinel has already been consumed by an earlier
// (higher-offset, since the walk is backwards) insert at the same
// position; when inserting at the segment end and not yet consumed, the
// trailing newline is stripped and the caller's consumed flag is set.
func InsertText(index uint32, text string, segmentID, tabID ID, atSegmentEnd bool, consumed *bool) *Record {
	stripped := text
	if atSegmentEnd && !*consumed {
		stripped = trimOneTrailingNewline(text)
		*consumed = true
	}
	return &Record{
		Op:       OpInsertText,
		Location: &Location{Index: index, SegmentID: segmentID, TabID: tabID},
		Text:     stripped,
	}
}

func trimOneTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}

// UpdateTextStyle builds one style-update record over a run range.
func UpdateTextStyle(start, end uint32, segmentID, tabID ID, style *docsapi.TextStyle, fields string) *Record {
	return &Record{
		Op:        OpUpdateTextStyle,
		Range:     &Range{Start: start, End: end, SegmentID: segmentID, TabID: tabID},
		TextStyle: style,
		Fields:    fields,
	}
}

// UpdateParagraphStyle builds one paragraph-style-update record.
func UpdateParagraphStyle(start, end uint32, segmentID, tabID ID, style *docsapi.ParagraphStyle, namedStyleType, fields string) *Record {
	return &Record{
		Op:             OpUpdateParagraphStyle,
		Range:          &Range{Start: start, End: end, SegmentID: segmentID, TabID: tabID},
		ParagraphStyle: style,
		NamedStyleType: namedStyleType,
		Fields:         fields,
	}
}

// CreateBullets builds one create-bullets request over [start, end), a
// range that may cover several consecutive list items of an identical
// preset (spec.md §4.6).
func CreateBullets(start, end uint32, segmentID, tabID ID, preset string) *Record {
	return &Record{
		Op:           OpCreateBullets,
		Range:        &Range{Start: start, End: end, SegmentID: segmentID, TabID: tabID},
		BulletPreset: preset,
	}
}

func DeleteBullets(start, end uint32, segmentID, tabID ID) *Record {
	return &Record{Op: OpDeleteBullets, Range: &Range{Start: start, End: end, SegmentID: segmentID, TabID: tabID}}
}

// InsertSpecial builds an inline-special insertion record.
func InsertSpecial(index uint32, kind string, attrs map[string]string, segmentID, tabID ID) *Record {
	return &Record{
		Op:          OpInsertSpecial,
		Location:    &Location{Index: index, SegmentID: segmentID, TabID: tabID},
		SpecialKind: kind,
		SpecialAttrs: attrs,
	}
}

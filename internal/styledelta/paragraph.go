package styledelta

import (
	"strings"

	docsapi "google.golang.org/api/docs/v1"
)

// ParagraphStyleInfo is the resolved paragraph-level style (spec.md §3
// "paragraph-level style, bullet descriptor").
type ParagraphStyleInfo struct {
	NamedStyleType string // "", "NORMAL_TEXT", "HEADING_1", ...
	Alignment      string
	ListID         string // "" means not in a list
	NestingLevel   int
}

// DiffParagraph computes the (ParagraphStyle, fields) pair for one
// paragraph, plus the namedStyleType to set directly on the record
// (spec.md S1: "UpdateParagraphStyle setting namedStyleType = NORMAL_TEXT").
func DiffParagraph(before, after ParagraphStyleInfo) (*docsapi.ParagraphStyle, string, string) {
	style := &docsapi.ParagraphStyle{}
	var fields []string
	var namedStyleType string

	if before.NamedStyleType != after.NamedStyleType {
		namedStyleType = after.NamedStyleType
		fields = append(fields, "namedStyleType")
	}
	if before.Alignment != after.Alignment {
		style.Alignment = after.Alignment
		fields = append(fields, "alignment")
	}

	if len(fields) == 0 {
		return nil, "", ""
	}
	return style, namedStyleType, strings.Join(fields, ",")
}

// ListTable maps a document's list id to the bullet preset its items
// render with (e.g. "BULLET_DISC_CIRCLE_SQUARE", "NUMBERED_DECIMAL_ALPHA_ROMAN").
// No preset is hardcoded (spec.md §9 "Hardcoded bullet preset"); nothing
// in this module builds a ListTable from a document's list metadata.
type ListTable map[string]string

// ChoosePreset resolves the preset for a given list id. An unknown list id
// is a caller bug (every list item's listId must appear in the document's
// own list table) — callers should treat a false ok as fatal rather than
// silently defaulting, per spec.md §9's "Dead-path silencing" note.
func (t ListTable) ChoosePreset(listID string) (string, bool) {
	preset, ok := t[listID]
	return preset, ok
}

// BulletChange describes one paragraph's create/delete-bullets need,
// grouped by the caller when consecutive list items share an identical
// preset (spec.md §4.6 "group consecutive list items of identical preset
// into one create request").
type BulletChange struct {
	ListID string
	Preset string
}

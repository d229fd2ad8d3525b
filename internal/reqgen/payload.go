package reqgen

import (
	"fmt"

	docsapi "google.golang.org/api/docs/v1"
)

// ToRequest converts a fully-resolved Record into the real Docs API
// request it represents, for a transport collaborator to append to a
// BatchUpdateDocumentRequest. It is the boundary where this package's own
// Location/Range (which can carry an unresolved Placeholder, spec.md
// §4.7) hand off to docs/v1's plain-string-id Location/Range: calling this
// before internal/deferredid.Resolve has filled in every Literal returns
// an error rather than silently submitting a placeholder string.
func (r *Record) ToRequest() (*docsapi.Request, error) {
	switch r.Op {
	case OpInsertText:
		loc, err := r.Location.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{InsertText: &docsapi.InsertTextRequest{Location: loc, Text: r.Text}}, nil

	case OpDeleteRange:
		rng, err := r.Range.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{DeleteContentRange: &docsapi.DeleteContentRangeRequest{Range: rng}}, nil

	case OpUpdateTextStyle:
		rng, err := r.Range.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{UpdateTextStyle: &docsapi.UpdateTextStyleRequest{
			Range: rng, TextStyle: r.TextStyle, Fields: r.Fields,
		}}, nil

	case OpUpdateParagraphStyle:
		rng, err := r.Range.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{UpdateParagraphStyle: &docsapi.UpdateParagraphStyleRequest{
			Range: rng, ParagraphStyle: r.ParagraphStyle, Fields: r.Fields,
		}}, nil

	case OpCreateBullets:
		rng, err := r.Range.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{CreateParagraphBullets: &docsapi.CreateParagraphBulletsRequest{
			Range: rng, BulletPreset: r.BulletPreset,
		}}, nil

	case OpDeleteBullets:
		rng, err := r.Range.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{DeleteParagraphBullets: &docsapi.DeleteParagraphBulletsRequest{Range: rng}}, nil

	case OpCreateHeader:
		// HeaderKind (DEFAULT/FIRST_PAGE_ONLY/EVEN_PAGE) has no field on
		// CreateHeaderRequest itself in the public API; a first-page or
		// even-page header is a document-style flag set separately. It
		// stays on Record for dialect bookkeeping only, like FootnoteRef.
		loc, err := r.Location.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{CreateHeader: &docsapi.CreateHeaderRequest{SectionBreakLocation: loc}}, nil

	case OpDeleteHeader:
		id, err := r.Location.SegmentID.literal()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{DeleteHeader: &docsapi.DeleteHeaderRequest{HeaderId: id}}, nil

	case OpCreateFooter:
		loc, err := r.Location.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{CreateFooter: &docsapi.CreateFooterRequest{SectionBreakLocation: loc}}, nil

	case OpDeleteFooter:
		id, err := r.Location.SegmentID.literal()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{DeleteFooter: &docsapi.DeleteFooterRequest{FooterId: id}}, nil

	case OpCreateFootnote:
		loc, err := r.Location.resolve()
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{CreateFootnote: &docsapi.CreateFootnoteRequest{Location: loc}}, nil

	case OpAddTab, OpDeleteTab, OpUpdateTabProperties:
		// Tab-level mutation has no batchUpdate Request counterpart in the
		// public Docs API; extradoc's XML dialect models tabs as a
		// top-level structural unit, but creating/removing one is a
		// Drive/Docs-UI-level operation, not a documents.batchUpdate
		// primitive. A transport collaborator handling these records needs
		// its own out-of-band mechanism.
		return nil, fmt.Errorf("reqgen: %s has no docs/v1 batchUpdate request equivalent", r.Op)

	case OpInsertTable, OpInsertTableRow, OpDeleteTableRow, OpInsertTableColumn,
		OpDeleteTableColumn, OpMergeCells, OpUnmergeCells, OpUpdateTableCellStyle, OpUpdateColumnWidth:
		return r.ToTableRequest()

	case OpInsertSpecial:
		loc, err := r.Location.resolve()
		if err != nil {
			return nil, err
		}
		if r.SpecialKind == "pageBreak" {
			return &docsapi.Request{InsertPageBreak: &docsapi.InsertPageBreakRequest{Location: loc}}, nil
		}
		// Other special kinds (column breaks, footnote references,
		// horizontal rules, inline images, ...) have no generic request
		// here and return an error. A newly created footnote's reference
		// is emitted as its own CreateFootnote record by trySpecialOnlyEdit.
		return nil, fmt.Errorf("reqgen: insert_special kind %q has no generic docs/v1 request", r.SpecialKind)

	default:
		return nil, fmt.Errorf("reqgen: %s: unhandled op", r.Op)
	}
}

func (l *Location) resolve() (*docsapi.Location, error) {
	if l == nil {
		return nil, fmt.Errorf("reqgen: nil location")
	}
	segID, err := l.SegmentID.literal()
	if err != nil {
		return nil, err
	}
	tabID, err := l.TabID.literal()
	if err != nil {
		return nil, err
	}
	return &docsapi.Location{Index: int64(l.Index), SegmentId: segID, TabId: tabID}, nil
}

func (r *Range) resolve() (*docsapi.Range, error) {
	if r == nil {
		return nil, fmt.Errorf("reqgen: nil range")
	}
	segID, err := r.SegmentID.literal()
	if err != nil {
		return nil, err
	}
	tabID, err := r.TabID.literal()
	if err != nil {
		return nil, err
	}
	return &docsapi.Range{StartIndex: int64(r.Start), EndIndex: int64(r.End), SegmentId: segID, TabId: tabID}, nil
}

func (id ID) literal() (string, error) {
	if id.Placeholder != nil {
		return "", fmt.Errorf("reqgen: id at response_path %q has not been resolved", id.Placeholder.ResponsePath)
	}
	return id.Literal, nil
}

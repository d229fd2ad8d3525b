// Package docxml holds the flat XML decode types for the snapshot dialect
// the Diff/Reconciliation Engine consumes. Serialization and deserialization
// of this dialect against the live Google Docs model is an external
// collaborator's job (see spec.md §1); this package only defines the typed
// shape the Block Tree Builder parses into its own tree, plus a thin
// encoding/xml decoder for exercising the engine against fixtures.
package docxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Document is the root of one flat-XML snapshot. A document with no <tab>
// elements is a legacy single-tab document; the Block Tree Builder wraps it
// in a synthetic tab per spec.md §4.2.
type Document struct {
	Tabs []Tab
	Body *Body // set only for legacy single-tab documents
}

// Tab is one tab's worth of segments.
type Tab struct {
	ID        string
	Body      Body
	Headers   []Header
	Footers   []Footer
	Footnotes []Footnote
}

// Header is a header segment, addressable by a server-assigned id once created.
type Header struct {
	ID   string
	Kind string // DEFAULT, FIRST_PAGE_ONLY, EVEN_PAGE
	Body Body
}

// Footer mirrors Header for the footer segment kind.
type Footer struct {
	ID   string
	Kind string
	Body Body
}

// Footnote is a footnote's body, addressed by segment id once created.
type Footnote struct {
	ID   string
	Body Body
}

// Body is the sequence of top-level blocks in one segment.
type Body struct {
	Blocks []Block
}

// Block is a union of the block shapes that can appear directly in a
// segment body. Exactly one field is non-nil; the Block Tree Builder
// switches on which.
type Block struct {
	Paragraph    *Paragraph
	Table        *Table
	SectionBreak *SectionBreak
	TOC          *TOC
}

// Paragraph is one paragraph element.
type Paragraph struct {
	Tag      string // normal, heading1..6, title, subtitle, list_item
	StyleRef string
	ListID   string
	// Content interleaves runs and inline specials in document order; the
	// Index Model needs that order to compute offsets of specials within a
	// paragraph (e.g. a footnote reference mid-sentence).
	Content []ParaContent
}

// ParaContent is one element of paragraph content: exactly one of Run or
// Special is set.
type ParaContent struct {
	Run     *Run
	Special *Special
}

// Run is one contiguous text run.
type Run struct {
	Text  string
	Style string
}

// Special is an inline special: pageBreak, columnBreak, hr, image,
// person, date, equation, or footnoteRef. Each contributes 1 UTF-16 unit.
type Special struct {
	Kind string
	Ref  string // e.g. footnote segment id for footnoteRef
	Attr map[string]string
}

// Table is a table element: rows x cols grid with stable row/column ids.
type Table struct {
	ColIDs []string
	Rows   []TableRow
	Style  string
}

// TableRow is one row, with a stable row id and its cells left to right.
type TableRow struct {
	RowID string
	Cells []TableCell
}

// TableCell is one cell; ColID ties it to the table's column identity.
type TableCell struct {
	ColID string
	Body  Body
	Style string
}

// SectionBreak is a leaf section break marker.
type SectionBreak struct{}

// TOC is a read-only table-of-contents leaf.
type TOC struct {
	Content string
}

// Parse decodes raw flat-XML bytes into a Document. It does not validate
// structural invariants (uniqueness of ids, etc.) — that is the Block Tree
// Builder's job, since only it has enough context to report a useful path
// back to the caller.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: read root token: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "document" {
			return nil, fmt.Errorf("docxml: expected root <document>, got <%s>", start.Name.Local)
		}
		return decodeDocument(dec, start)
	}
}

func decodeDocument(dec *xml.Decoder, start xml.StartElement) (*Document, error) {
	doc := &Document{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tab":
				tab, err := decodeTab(dec, t)
				if err != nil {
					return nil, err
				}
				doc.Tabs = append(doc.Tabs, *tab)
			case "body":
				body, err := decodeBody(dec, t)
				if err != nil {
					return nil, err
				}
				doc.Body = body
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return doc, nil
			}
		}
	}
}

func attrVal(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func decodeTab(dec *xml.Decoder, start xml.StartElement) (*Tab, error) {
	tab := &Tab{ID: attrVal(start.Attr, "id")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode tab %q: %w", tab.ID, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "body":
				body, err := decodeBody(dec, t)
				if err != nil {
					return nil, err
				}
				tab.Body = *body
			case "header":
				h, err := decodeHeader(dec, t)
				if err != nil {
					return nil, err
				}
				tab.Headers = append(tab.Headers, *h)
			case "footer":
				f, err := decodeFooter(dec, t)
				if err != nil {
					return nil, err
				}
				tab.Footers = append(tab.Footers, *f)
			case "footnote":
				fn, err := decodeFootnote(dec, t)
				if err != nil {
					return nil, err
				}
				tab.Footnotes = append(tab.Footnotes, *fn)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return tab, nil
			}
		}
	}
}

func decodeFootnote(dec *xml.Decoder, start xml.StartElement) (*Footnote, error) {
	fn := &Footnote{ID: attrVal(start.Attr, "id")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode footnote %q: %w", fn.ID, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				body, err := decodeBody(dec, t)
				if err != nil {
					return nil, err
				}
				fn.Body = *body
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return fn, nil
			}
		}
	}
}

func decodeHeader(dec *xml.Decoder, start xml.StartElement) (*Header, error) {
	h := &Header{ID: attrVal(start.Attr, "id"), Kind: attrVal(start.Attr, "kind")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode header %q: %w", h.ID, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				body, err := decodeBody(dec, t)
				if err != nil {
					return nil, err
				}
				h.Body = *body
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return h, nil
			}
		}
	}
}

func decodeFooter(dec *xml.Decoder, start xml.StartElement) (*Footer, error) {
	f := &Footer{ID: attrVal(start.Attr, "id"), Kind: attrVal(start.Attr, "kind")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode footer %q: %w", f.ID, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				body, err := decodeBody(dec, t)
				if err != nil {
					return nil, err
				}
				f.Body = *body
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return f, nil
			}
		}
	}
}

func decodeBody(dec *xml.Decoder, start xml.StartElement) (*Body, error) {
	body := &Body{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			block, err := decodeBlock(dec, t)
			if err != nil {
				return nil, err
			}
			if block != nil {
				body.Blocks = append(body.Blocks, *block)
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return body, nil
			}
		}
	}
}

func decodeBlock(dec *xml.Decoder, start xml.StartElement) (*Block, error) {
	switch start.Name.Local {
	case "p":
		p, err := decodeParagraph(dec, start)
		if err != nil {
			return nil, err
		}
		return &Block{Paragraph: p}, nil
	case "table":
		tb, err := decodeTable(dec, start)
		if err != nil {
			return nil, err
		}
		return &Block{Table: tb}, nil
	case "sectionBreak":
		if err := dec.Skip(); err != nil {
			return nil, err
		}
		return &Block{SectionBreak: &SectionBreak{}}, nil
	case "toc":
		content, err := decodeCharData(dec, start)
		if err != nil {
			return nil, err
		}
		return &Block{TOC: &TOC{Content: content}}, nil
	default:
		if err := dec.Skip(); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func decodeCharData(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var text string
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text += string(t)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return text, nil
			}
		}
	}
}

var specialKinds = map[string]bool{
	"pageBreak": true, "columnBreak": true, "hr": true, "image": true,
	"person": true, "date": true, "equation": true, "footnoteRef": true,
}

func decodeParagraph(dec *xml.Decoder, start xml.StartElement) (*Paragraph, error) {
	p := &Paragraph{
		Tag:      attrVal(start.Attr, "tag"),
		StyleRef: attrVal(start.Attr, "style"),
		ListID:   attrVal(start.Attr, "listId"),
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "r" {
				text, err := decodeCharData(dec, t)
				if err != nil {
					return nil, err
				}
				run := &Run{Text: text, Style: attrVal(t.Attr, "style")}
				p.Content = append(p.Content, ParaContent{Run: run})
				continue
			}
			if specialKinds[t.Name.Local] {
				attrMap := map[string]string{}
				for _, a := range t.Attr {
					attrMap[a.Name.Local] = a.Value
				}
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				sp := &Special{Kind: t.Name.Local, Ref: attrVal(t.Attr, "ref"), Attr: attrMap}
				p.Content = append(p.Content, ParaContent{Special: sp})
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return p, nil
			}
		}
	}
}

func decodeTable(dec *xml.Decoder, start xml.StartElement) (*Table, error) {
	tb := &Table{Style: attrVal(start.Attr, "style")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode table: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "colId":
				text, err := decodeCharData(dec, t)
				if err != nil {
					return nil, err
				}
				tb.ColIDs = append(tb.ColIDs, text)
			case "row":
				row, err := decodeTableRow(dec, t)
				if err != nil {
					return nil, err
				}
				tb.Rows = append(tb.Rows, *row)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return tb, nil
			}
		}
	}
}

func decodeTableRow(dec *xml.Decoder, start xml.StartElement) (*TableRow, error) {
	row := &TableRow{RowID: attrVal(start.Attr, "id")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode row %q: %w", row.RowID, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "cell" {
				cell, err := decodeTableCell(dec, t)
				if err != nil {
					return nil, err
				}
				row.Cells = append(row.Cells, *cell)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return row, nil
			}
		}
	}
}

func decodeTableCell(dec *xml.Decoder, start xml.StartElement) (*TableCell, error) {
	cell := &TableCell{ColID: attrVal(start.Attr, "colId"), Style: attrVal(start.Attr, "style")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docxml: decode cell: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				body, err := decodeBody(dec, t)
				if err != nil {
					return nil, err
				}
				cell.Body = *body
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return cell, nil
			}
		}
	}
}

package styledelta

import (
	"strings"

	docsapi "google.golang.org/api/docs/v1"
)

// CellStyleInfo is the resolved table-cell style (background color and
// content alignment).
type CellStyleInfo struct {
	BackgroundHex   string
	ContentAlignment string
}

// DiffCell computes the (TableCellStyle, fields) pair for one cell.
// Cell-paragraph style comparison is intentionally exact: the spec (§9
// open question) leaves a "tolerant" comparator as a caller choice rather
// than masking differences here.
func DiffCell(before, after CellStyleInfo) (*docsapi.TableCellStyle, string) {
	style := &docsapi.TableCellStyle{}
	var fields []string

	if before.BackgroundHex != after.BackgroundHex {
		if c, ok := hexColor(after.BackgroundHex); ok {
			style.BackgroundColor = c
		}
		fields = append(fields, "backgroundColor")
	}
	if before.ContentAlignment != after.ContentAlignment {
		style.ContentAlignment = after.ContentAlignment
		fields = append(fields, "contentAlignment")
	}

	if len(fields) == 0 {
		return nil, ""
	}
	return style, strings.Join(fields, ",")
}

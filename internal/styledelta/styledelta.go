// Package styledelta implements the Style Differ (spec.md §4.8): minimal
// (style, field_mask) pairs for text, paragraph, and cell styles, in the
// same style-struct-plus-field-list shape the teacher's brace-expression
// formatter builds by hand (docs_sed_brace_format.go).
package styledelta

import (
	"strings"

	docsapi "google.golang.org/api/docs/v1"
)

// Style is this engine's resolved text-property set for one run, looked
// up from the style table by class name (spec.md §6 "style table").
type Style struct {
	Bold           bool
	Italic         bool
	Underline      bool
	Strikethrough  bool
	SmallCaps      bool
	BaselineOffset string // "", "SUPERSCRIPT", "SUBSCRIPT"
	FontFamily     string
	FontSizePt     float64 // 0 means unset
	ForegroundHex  string  // "" means unset
	BackgroundHex  string
	LinkURL        string
}

// DiffText computes the (TextStyle, fields) pair for a run whose resolved
// style changed from before to after. Only properties that actually
// differ are included in style; fields lists every changed property name,
// including ones cleared back to empty (spec.md §4.8: "fields but absent
// from style are treated as clear").
func DiffText(before, after Style) (*docsapi.TextStyle, string) {
	style := &docsapi.TextStyle{}
	var fields []string

	if before.Bold != after.Bold {
		style.Bold = after.Bold
		fields = append(fields, "bold")
	}
	if before.Italic != after.Italic {
		style.Italic = after.Italic
		fields = append(fields, "italic")
	}
	if before.Underline != after.Underline {
		style.Underline = after.Underline
		fields = append(fields, "underline")
	}
	if before.Strikethrough != after.Strikethrough {
		style.Strikethrough = after.Strikethrough
		fields = append(fields, "strikethrough")
	}
	if before.SmallCaps != after.SmallCaps {
		style.SmallCaps = after.SmallCaps
		fields = append(fields, "smallCaps")
	}
	if before.BaselineOffset != after.BaselineOffset {
		style.BaselineOffset = after.BaselineOffset
		fields = append(fields, "baselineOffset")
	}
	if before.FontFamily != after.FontFamily {
		if after.FontFamily != "" {
			style.WeightedFontFamily = &docsapi.WeightedFontFamily{FontFamily: after.FontFamily}
		}
		fields = append(fields, "weightedFontFamily")
	}
	if before.FontSizePt != after.FontSizePt {
		if after.FontSizePt != 0 {
			style.FontSize = &docsapi.Dimension{Magnitude: after.FontSizePt, Unit: "PT"}
		}
		fields = append(fields, "fontSize")
	}
	if before.ForegroundHex != after.ForegroundHex {
		if c, ok := hexColor(after.ForegroundHex); ok {
			style.ForegroundColor = c
		}
		fields = append(fields, "foregroundColor")
	}
	if before.BackgroundHex != after.BackgroundHex {
		if c, ok := hexColor(after.BackgroundHex); ok {
			style.BackgroundColor = c
		}
		fields = append(fields, "backgroundColor")
	}
	if before.LinkURL != after.LinkURL {
		if after.LinkURL != "" {
			style.Link = &docsapi.Link{Url: after.LinkURL}
		}
		fields = append(fields, "link")
	}

	if len(fields) == 0 {
		return nil, ""
	}
	return style, strings.Join(fields, ",")
}

func hexColor(hex string) (*docsapi.OptionalColor, bool) {
	if len(hex) != 6 {
		return nil, false
	}
	r, ok1 := hexByte(hex[0:2])
	g, ok2 := hexByte(hex[2:4])
	b, ok3 := hexByte(hex[4:6])
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	return &docsapi.OptionalColor{
		Color: &docsapi.Color{RgbColor: &docsapi.RgbColor{Red: r, Green: g, Blue: b}},
	}, true
}

func hexByte(s string) (float64, bool) {
	var v int
	for _, c := range s {
		v *= 16
		switch {
		case c >= '0' && c <= '9':
			v += int(c - '0')
		case c >= 'a' && c <= 'f':
			v += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v += int(c-'A') + 10
		default:
			return 0, false
		}
	}
	return float64(v) / 255.0, true
}

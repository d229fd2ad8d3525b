package styledelta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffTextNoChange(t *testing.T) {
	s := Style{Bold: true}
	style, fields := DiffText(s, s)
	require.Nil(t, style)
	require.Empty(t, fields)
}

func TestDiffTextBoldToggled(t *testing.T) {
	style, fields := DiffText(Style{}, Style{Bold: true})
	require.NotNil(t, style)
	require.True(t, style.Bold)
	require.Equal(t, "bold", fields)
}

func TestDiffTextMultiplePropertiesJoinedInOrder(t *testing.T) {
	before := Style{}
	after := Style{Bold: true, Italic: true, FontFamily: "Courier New"}
	style, fields := DiffText(before, after)
	require.NotNil(t, style)
	require.True(t, style.Bold)
	require.True(t, style.Italic)
	require.Equal(t, "Courier New", style.WeightedFontFamily.FontFamily)
	require.Equal(t, "bold,italic,weightedFontFamily", fields)
}

func TestDiffTextClearedColorStillListedInFields(t *testing.T) {
	before := Style{ForegroundHex: "ff0000"}
	after := Style{}
	style, fields := DiffText(before, after)
	require.NotNil(t, style)
	require.Nil(t, style.ForegroundColor)
	require.Equal(t, "foregroundColor", fields)
}

func TestDiffParagraphNamedStyleType(t *testing.T) {
	style, named, fields := DiffParagraph(ParagraphStyleInfo{}, ParagraphStyleInfo{NamedStyleType: "NORMAL_TEXT"})
	require.NotNil(t, style)
	require.Equal(t, "NORMAL_TEXT", named)
	require.Equal(t, "namedStyleType", fields)
}

func TestListTableChoosePresetUnknownIsNotOK(t *testing.T) {
	table := ListTable{"list1": "BULLET_DISC_CIRCLE_SQUARE"}
	preset, ok := table.ChoosePreset("list1")
	require.True(t, ok)
	require.Equal(t, "BULLET_DISC_CIRCLE_SQUARE", preset)

	_, ok = table.ChoosePreset("unknown")
	require.False(t, ok)
}

func TestDiffCellBackground(t *testing.T) {
	style, fields := DiffCell(CellStyleInfo{}, CellStyleInfo{BackgroundHex: "00ff00"})
	require.NotNil(t, style)
	require.NotNil(t, style.BackgroundColor)
	require.Equal(t, "backgroundColor", fields)
}

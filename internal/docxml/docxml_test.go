package docxml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLegacySingleTab(t *testing.T) {
	src := `<document>
  <body>
    <sectionBreak/>
    <p tag="normal"><r>Hello world</r></p>
  </body>
</document>`

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Nil(t, doc.Tabs)
	require.NotNil(t, doc.Body)
	require.Len(t, doc.Body.Blocks, 2)
	require.NotNil(t, doc.Body.Blocks[0].SectionBreak)
	require.NotNil(t, doc.Body.Blocks[1].Paragraph)
	require.Equal(t, "normal", doc.Body.Blocks[1].Paragraph.Tag)
	require.Len(t, doc.Body.Blocks[1].Paragraph.Content, 1)
	require.Equal(t, "Hello world", doc.Body.Blocks[1].Paragraph.Content[0].Run.Text)
}

func TestParseTableWithStableIDs(t *testing.T) {
	src := `<document>
  <tab id="t1">
    <body>
      <table>
        <colId>c1</colId>
        <colId>c2</colId>
        <row id="r1">
          <cell colId="c1"><body><p tag="normal"><r>X</r></p></body></cell>
          <cell colId="c2"><body><p tag="normal"><r>Y</r></p></body></cell>
        </row>
      </table>
    </body>
  </tab>
</document>`

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Tabs, 1)
	tab := doc.Tabs[0]
	require.Equal(t, "t1", tab.ID)
	require.Len(t, tab.Body.Blocks, 1)
	table := tab.Body.Blocks[0].Table
	require.NotNil(t, table)
	require.Equal(t, []string{"c1", "c2"}, table.ColIDs)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "r1", table.Rows[0].RowID)
	require.Len(t, table.Rows[0].Cells, 2)
}

func TestParseInlineSpecialPreservesOrder(t *testing.T) {
	src := `<document><body><p tag="normal"><r>See</r><footnoteRef ref="fn1"/><r> details.</r></p></body></document>`

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	content := doc.Body.Blocks[0].Paragraph.Content
	require.Len(t, content, 3)
	require.NotNil(t, content[0].Run)
	require.NotNil(t, content[1].Special)
	require.Equal(t, "footnoteRef", content[1].Special.Kind)
	require.Equal(t, "fn1", content[1].Special.Ref)
	require.NotNil(t, content[2].Run)
}

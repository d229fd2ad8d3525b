package reqgen

import (
	"fmt"

	docsapi "google.golang.org/api/docs/v1"
)

// tableStart resolves r.Location (the table's own start index) into the
// docs/v1 Location that table requests are rooted at.
func (r *Record) tableStart() (*docsapi.Location, error) {
	return r.Location.resolve()
}

// ToTableRequest converts a fully-resolved table-op Record into its docs/v1
// request, mirroring ToRequest but split out since table ops share the
// TableCellLocation/TableRange wrapper shapes rather than plain
// Location/Range.
func (r *Record) ToTableRequest() (*docsapi.Request, error) {
	start, err := r.tableStart()
	if err != nil {
		return nil, err
	}

	switch r.Op {
	case OpInsertTable:
		return &docsapi.Request{InsertTable: &docsapi.InsertTableRequest{
			Location: start, Rows: int64(r.Rows), Columns: int64(r.Cols),
		}}, nil

	case OpInsertTableRow:
		return &docsapi.Request{InsertTableRow: &docsapi.InsertTableRowRequest{
			InsertBelow: r.Below,
			TableCellLocation: &docsapi.TableCellLocation{
				RowIndex: int64(r.RowRef), TableStartLocation: start,
			},
		}}, nil

	case OpDeleteTableRow:
		return &docsapi.Request{DeleteTableRow: &docsapi.DeleteTableRowRequest{
			TableCellLocation: &docsapi.TableCellLocation{
				RowIndex: int64(r.RowRef), TableStartLocation: start,
			},
		}}, nil

	case OpInsertTableColumn:
		return &docsapi.Request{InsertTableColumn: &docsapi.InsertTableColumnRequest{
			InsertRight: r.Right,
			TableCellLocation: &docsapi.TableCellLocation{
				RowIndex: int64(r.RowRef), ColumnIndex: int64(r.ColRef), TableStartLocation: start,
			},
		}}, nil

	case OpDeleteTableColumn:
		return &docsapi.Request{DeleteTableColumn: &docsapi.DeleteTableColumnRequest{
			TableCellLocation: &docsapi.TableCellLocation{
				ColumnIndex: int64(r.ColRef), TableStartLocation: start,
			},
		}}, nil

	case OpMergeCells:
		return &docsapi.Request{MergeTableCells: &docsapi.MergeTableCellsRequest{
			TableRange: &docsapi.TableRange{
				RowSpan: int64(r.RowSpan), ColumnSpan: int64(r.ColSpan),
				TableCellLocation: &docsapi.TableCellLocation{
					RowIndex: int64(r.Origin[0]), ColumnIndex: int64(r.Origin[1]), TableStartLocation: start,
				},
			},
		}}, nil

	case OpUnmergeCells:
		return &docsapi.Request{UnmergeTableCells: &docsapi.UnmergeTableCellsRequest{
			TableRange: &docsapi.TableRange{
				RowSpan: 1, ColumnSpan: 1,
				TableCellLocation: &docsapi.TableCellLocation{
					RowIndex: int64(r.Origin[0]), ColumnIndex: int64(r.Origin[1]), TableStartLocation: start,
				},
			},
		}}, nil

	case OpUpdateTableCellStyle:
		return &docsapi.Request{UpdateTableCellStyle: &docsapi.UpdateTableCellStyleRequest{
			Fields: r.Fields, TableCellStyle: r.CellStyle,
			TableRange: &docsapi.TableRange{
				RowSpan: int64(r.RowSpan), ColumnSpan: int64(r.ColSpan),
				TableCellLocation: &docsapi.TableCellLocation{
					RowIndex: int64(r.Origin[0]), ColumnIndex: int64(r.Origin[1]), TableStartLocation: start,
				},
			},
		}}, nil

	case OpUpdateColumnWidth:
		indices := make([]int64, len(r.ColIndices))
		for i, v := range r.ColIndices {
			indices[i] = int64(v)
		}
		return &docsapi.Request{UpdateTableColumnProperties: &docsapi.UpdateTableColumnPropertiesRequest{
			Fields:                "width",
			TableColumnProperties: &docsapi.TableColumnProperties{WidthType: "FIXED_WIDTH", Width: &docsapi.Dimension{Magnitude: r.Width, Unit: "PT"}},
			ColumnIndices:         indices,
			TableStartLocation:    start,
		}}, nil

	default:
		return nil, fmt.Errorf("reqgen: %s is not a table op", r.Op)
	}
}

// internal/service/ingestion/spreadsheet.go
package ingestion

import (
	"fmt"
	"io"
	"strconv"

	xerrors "customer-lookup-service/internal/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// ParseSpreadsheet reads the first sheet of a workbook. Headers are taken as
// text; numeric data cells are returned as float64 so date serials survive.
func ParseSpreadsheet(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open workbook: %v", xerrors.ErrMalformedSource, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", xerrors.ErrMalformedSource)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", xerrors.ErrMalformedSource, sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q needs a header row and at least one data row", xerrors.ErrMalformedSource, sheet)
	}

	table := &Table{
		Headers: rows[0],
		Rows:    make([][]Cell, 0, len(rows)-1),
	}
	for r, row := range rows[1:] {
		cells := make([]Cell, len(row))
		for c, raw := range row {
			// +2: excelize coordinates are 1-based and the header occupies row 1.
			cells[c] = typedCell(f, sheet, c+1, r+2, raw)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func typedCell(f *excelize.File, sheet string, col, row int, raw string) Cell {
	if raw == "" {
		return raw
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}

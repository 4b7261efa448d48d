package spreadsheet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

const xlsCharset = "utf-8"

// ReadXLS parses the first worksheet of a legacy BIFF workbook. The first row holds the headers.
func ReadXLS(r io.Reader) (rows []Row, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read workbook")
	}

	// The BIFF parser panics on truncated or foreign input.
	defer func() {
		if rec := recover(); rec != nil {
			rows = nil
			err = pkgerrors.New(pkgerrors.CodeValidation, "open workbook").
				WithDetails(map[string]any{"format": FormatXLS, "cause": fmt.Sprint(rec)})
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(raw), xlsCharset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open workbook")
	}
	if wb == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "open workbook: no workbook stream")
	}
	if wb.NumSheets() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no sheets")
	}
	return rowsFromGrid(xlsGrid(sheet)), nil
}

// xlsGrid lays the sheet out as positional cells. Missing rows become empty slices.
func xlsGrid(sheet *xls.WorkSheet) [][]string {
	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row, ok := xlsRow(sheet, i)
		if !ok {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}
	return grid
}

// xlsRow looks up a row. WorkSheet.Row dereferences missing rows, so absence surfaces as a panic.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			row, ok = nil, false
		}
	}()
	row = sheet.Row(i)
	return row, row != nil
}

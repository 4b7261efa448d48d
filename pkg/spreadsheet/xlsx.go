package spreadsheet

import (
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes a single-sheet workbook named after sheet.Name.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()

	name := sheet.Name
	if name == "" {
		name = defaultSheet
	}
	if name != defaultSheet {
		f.SetSheetName(defaultSheet, name)
	}

	setRow(f, name, 1, toAny(sheet.Headers))
	for i, row := range sheet.Rows {
		setRow(f, name, i+2, row)
	}

	if err := f.Write(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write workbook")
	}
	return nil
}

// ReadXLSX parses the first worksheet. The first row holds the headers.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open workbook")
	}

	first, ok := firstSheet(f)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no sheets")
	}
	return rowsFromGrid(f.GetRows(first)), nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) {
	f.SetSheetRow(sheet, "A"+strconv.Itoa(rowNum), &values)
}

// firstSheet returns the sheet with the lowest index.
func firstSheet(f *excelize.File) (string, bool) {
	sheets := f.GetSheetMap()
	if len(sheets) == 0 {
		return "", false
	}
	idx := slices.Sorted(maps.Keys(sheets))
	return sheets[idx[0]], true
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

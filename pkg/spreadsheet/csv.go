package spreadsheet

import (
	"encoding/csv"
	"io"
	"strings"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"
)

// WriteCSV writes the header row followed by every data row.
func WriteCSV(w io.Writer, sheet Sheet) error {
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := writer.Write(sheet.Headers); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for _, row := range sheet.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = cast.ToString(value)
		}
		if err := writer.Write(cells); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

// ReadCSV decodes a header-led csv document into rows.
func ReadCSV(r io.Reader) ([]Row, error) {
	maps, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse csv")
	}
	rows := make([]Row, 0, len(maps))
	for _, m := range maps {
		row := Row{}
		for key, value := range m {
			key = strings.TrimSpace(strings.TrimPrefix(key, "\uFEFF"))
			value = strings.TrimSpace(value)
			if key == "" || value == "" {
				continue
			}
			row[key] = value
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Package spreadsheet encodes record tables to xlsx/csv and decodes uploaded xlsx/xls/csv sheets into row objects.
package spreadsheet

import (
	"io"
	"strings"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

// Sheet is a named table with a header row.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Row is one decoded data row keyed by header. Empty cells are omitted.
type Row map[string]any

// Write encodes the sheet in the requested format.
func Write(w io.Writer, format Format, sheet Sheet) error {
	if err := format.checkWritable(); err != nil {
		return err
	}
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, sheet)
	case FormatCSV:
		return WriteCSV(w, sheet)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unsupported spreadsheet format").WithDetails(map[string]any{"format": format})
}

// Read decodes the first sheet of the input into rows.
func Read(r io.Reader, format Format) ([]Row, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	case FormatXLS:
		return ReadXLS(r)
	case FormatCSV:
		return ReadCSV(r)
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported spreadsheet format").WithDetails(map[string]any{"format": format})
}

// rowsFromGrid treats the first line as headers and drops blank data lines.
func rowsFromGrid(grid [][]string) []Row {
	if len(grid) == 0 {
		return []Row{}
	}
	headers := normalizeHeaders(grid[0])
	rows := make([]Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := rowFromCells(headers, cells)
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func rowFromCells(headers []string, cells []string) Row {
	row := Row{}
	for i, header := range headers {
		if header == "" || i >= len(cells) {
			continue
		}
		value := strings.TrimSpace(cells[i])
		if value == "" {
			continue
		}
		row[header] = value
	}
	return row
}

func normalizeHeaders(cells []string) []string {
	headers := make([]string, len(cells))
	for i, cell := range cells {
		headers[i] = strings.TrimSpace(cell)
	}
	return headers
}

package spreadsheet

import (
	"path/filepath"
	"strings"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

// Format is a supported spreadsheet encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	// FormatXLS is the legacy BIFF workbook. It is read on import only.
	FormatXLS Format = "xls"
)

// ParseFormat accepts "xlsx", "xls" or "csv" (case-insensitive). Empty input means xlsx.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatXLSX):
		return FormatXLSX, nil
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatXLS):
		return FormatXLS, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported spreadsheet format").
		WithDetails(map[string]any{"format": value, "supported": []Format{FormatXLSX, FormatXLS, FormatCSV}})
}

// ParseExportFormat is ParseFormat restricted to the formats Write produces.
func ParseExportFormat(value string) (Format, error) {
	f, err := ParseFormat(value)
	if err != nil {
		return "", err
	}
	return f, f.checkWritable()
}

// FormatFromFilename picks the format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(name))), ".")
	if ext == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet file needs an .xlsx, .xls or .csv extension").
			WithDetails(map[string]any{"file": name})
	}
	return ParseFormat(ext)
}

// ExportFormatFromFilename is FormatFromFilename restricted to the formats Write produces.
func ExportFormatFromFilename(name string) (Format, error) {
	f, err := FormatFromFilename(name)
	if err != nil {
		return "", err
	}
	return f, f.checkWritable()
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLS:
		return "application/vnd.ms-excel"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (f Format) checkWritable() error {
	if f == FormatXLSX || f == FormatCSV {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "export writes .xlsx or .csv only").
		WithDetails(map[string]any{"format": f, "supported": []Format{FormatXLSX, FormatCSV}})
}

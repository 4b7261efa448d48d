package records

import (
	"fmt"
	"reflect"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/spreadsheet"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// DecodeRows coerces spreadsheet rows into typed records using their json tags.
// Row numbers in errors are 1-based and count the header row.
func DecodeRows[T any](schema Schema[T], rows []spreadsheet.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var rec T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &rec,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				decimalHook,
				intHook,
			),
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build row decoder")
		}
		if err := decoder.Decode(map[string]any(row)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("row %d", i+2)).
				WithDetails(map[string]any{"row": i + 2})
		}
		if schema.ID(rec) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("row %d has no identifier", i+2)).
				WithDetails(map[string]any{"row": i + 2})
		}
		out = append(out, schema.normalize(rec))
	}
	return out, nil
}

func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	if d, ok := data.(decimal.Decimal); ok {
		return d, nil
	}
	raw, err := cast.ToStringE(data)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func intHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int || from.Kind() == reflect.Int {
		return data, nil
	}
	return cast.ToIntE(data)
}

// ToSheet lays the collection out as one sheet with a header of field names.
func ToSheet[T any](schema Schema[T], records []T) spreadsheet.Sheet {
	sheet := spreadsheet.Sheet{
		Name:    schema.SheetName,
		Headers: schema.FieldNames(),
		Rows:    make([][]any, 0, len(records)),
	}
	for _, rec := range records {
		row := make([]any, len(schema.Fields))
		for i, f := range schema.Fields {
			row[i] = f.Value(rec)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Package records holds the generic record store, selection set and query projection
// shared by the product and promotion dashboards.
package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FieldKind decides how a field is compared when sorting.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
)

// Field describes one column of a record kind.
type Field[T any] struct {
	Name   string
	Kind   FieldKind
	Text   func(T) string
	Number func(T) decimal.Decimal
}

// Value returns the cell value used for export: strings for text fields, float64 for numbers.
func (f Field[T]) Value(rec T) any {
	if f.Kind == KindNumber && f.Number != nil {
		return f.Number(rec).InexactFloat64()
	}
	return f.String(rec)
}

// String renders the field for search matching.
func (f Field[T]) String(rec T) string {
	if f.Kind == KindNumber && f.Number != nil {
		return f.Number(rec).String()
	}
	if f.Text != nil {
		return f.Text(rec)
	}
	return ""
}

// Schema binds a record type to its identifier, columns, searchable fields and filter field.
type Schema[T any] struct {
	Resource    string
	SheetName   string
	ID          func(T) string
	Fields      []Field[T]
	Search      []string
	FilterField string
	// ImmutableID rejects updates whose record id differs from the addressed id.
	ImmutableID bool
	// Normalize recomputes derived values before a record is sent or stored.
	Normalize func(T) T
}

// Field looks a column up by its case-insensitive name.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field[T]{}, false
}

// FieldNames returns the column names in schema order.
func (s Schema[T]) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema[T]) normalize(rec T) T {
	if s.Normalize == nil {
		return rec
	}
	return s.Normalize(rec)
}

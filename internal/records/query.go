package records

import (
	"slices"
	"strings"

	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/pagination"
)

// Query is the filter/sort/page request for one projection.
type Query struct {
	Search    string
	Filter    string
	SortField string
	SortOrder enums.SortOrder
	Page      int
	PageSize  int
}

// Page is one projected page of records.
type Page[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalPages    int `json:"totalPages"`
	TotalFiltered int `json:"totalFiltered"`
}

// Project filters, sorts and paginates records without touching the input slice.
// An empty sort field keeps fetch order.
func Project[T any](records []T, schema Schema[T], q Query) (Page[T], error) {
	order := q.SortOrder
	if order == "" {
		order = enums.SortAsc
	}
	if !order.IsValid() {
		return Page[T]{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort order").
			WithDetails(map[string]string{"order": "must be one of asc desc"})
	}

	var sortField Field[T]
	sorting := strings.TrimSpace(q.SortField) != ""
	if sorting {
		f, ok := schema.Field(strings.TrimSpace(q.SortField))
		if !ok {
			return Page[T]{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort field").
				WithDetails(map[string]any{"sort": q.SortField, "fields": schema.FieldNames()})
		}
		sortField = f
	}

	filtered := Filter(records, schema, q.Search, q.Filter)
	if sorting {
		sortStable(filtered, sortField, order)
	}

	window := pagination.Resolve(pagination.Params{Page: q.Page, PageSize: q.PageSize}, len(filtered), q.PageSize)
	items := make([]T, window.End-window.Start)
	copy(items, filtered[window.Start:window.End])

	return Page[T]{
		Items:         items,
		Page:          window.Page,
		PageSize:      window.PageSize,
		TotalPages:    window.TotalPages,
		TotalFiltered: len(filtered),
	}, nil
}

// Filter keeps records whose searchable fields contain search (case-insensitive) and whose
// filter field equals filter (case-insensitive) when filter is set.
func Filter[T any](records []T, schema Schema[T], search, filter string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	filter = strings.TrimSpace(filter)

	searchFields := make([]Field[T], 0, len(schema.Search))
	for _, name := range schema.Search {
		if f, ok := schema.Field(name); ok {
			searchFields = append(searchFields, f)
		}
	}
	filterField, hasFilter := schema.Field(schema.FilterField)

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if filter != "" && hasFilter && !strings.EqualFold(filterField.String(rec), filter) {
			continue
		}
		if needle != "" && !matches(rec, searchFields, needle) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matches[T any](rec T, fields []Field[T], needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.String(rec)), needle) {
			return true
		}
	}
	return false
}

func sortStable[T any](records []T, field Field[T], order enums.SortOrder) {
	cmp := compareText[T](field)
	if field.Kind == KindNumber && field.Number != nil {
		cmp = func(a, b T) int { return field.Number(a).Cmp(field.Number(b)) }
	}
	if order == enums.SortDesc {
		asc := cmp
		cmp = func(a, b T) int { return asc(b, a) }
	}
	slices.SortStableFunc(records, cmp)
}

func compareText[T any](field Field[T]) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field.String(a)), strings.ToLower(field.String(b)))
	}
}

// NextSort returns the sort that a click on a column header should apply:
// the same column flips direction, a new column starts ascending.
func NextSort(currentField string, currentOrder enums.SortOrder, clicked string) (string, enums.SortOrder) {
	if currentField != "" && strings.EqualFold(currentField, clicked) {
		if currentOrder == "" {
			currentOrder = enums.SortAsc
		}
		return currentField, currentOrder.Flip()
	}
	return clicked, enums.SortAsc
}

// IDs returns the identifiers of records in order.
func IDs[T any](records []T, schema Schema[T]) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = schema.ID(rec)
	}
	return ids
}

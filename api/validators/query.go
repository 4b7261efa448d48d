package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/pagination"
)

const maxSearchLen = 200

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseRecordQuery reads q, filter, sort, order, page and pageSize.
func ParseRecordQuery(r *http.Request) (records.Query, error) {
	values := r.URL.Query()
	order, err := enums.ParseSortOrder(values.Get("order"))
	if err != nil {
		return records.Query{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort order").
			WithDetails(map[string]string{"order": "must be one of asc desc"})
	}
	page, err := ParseQueryInt(r, "page", 1, 1, 1<<20)
	if err != nil {
		return records.Query{}, err
	}
	pageSize, err := ParseQueryInt(r, "pageSize", 0, 0, pagination.MaxPageSize)
	if err != nil {
		return records.Query{}, err
	}
	return records.Query{
		Search:    SanitizeString(values.Get("q"), maxSearchLen),
		Filter:    SanitizeString(values.Get("filter"), maxSearchLen),
		SortField: SanitizeString(values.Get("sort"), maxSearchLen),
		SortOrder: order,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

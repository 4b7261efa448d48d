package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/catalog-admin/api/responses"
	"github.com/angelmondragon/catalog-admin/internal/categories"
	"github.com/angelmondragon/catalog-admin/internal/notices"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

func CategoriesActive(svc *categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Active(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CategorySizes lists the size choices for a category. Free-text categories return an empty list.
func CategorySizes(svc *categories.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		sizes := svc.SizeOptions(name)
		if sizes == nil {
			sizes = []string{}
		}
		responses.WriteSuccess(w, map[string]any{"categoryName": name, "sizes": sizes, "freeText": len(sizes) == 0})
	}
}

func NoticesRecent(rec *notices.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, rec.Recent())
	}
}

package controllers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/catalog-admin/api/responses"
	"github.com/angelmondragon/catalog-admin/api/validators"
	"github.com/angelmondragon/catalog-admin/internal/dashboard"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/angelmondragon/catalog-admin/pkg/spreadsheet"
)

const maxUploadBytes = 10 << 20

// DecodeFunc turns a request body into a validated record.
type DecodeFunc[T any] func(r *http.Request) (T, error)

func RecordView[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := validators.ParseRecordQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := dash.View(q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func RecordRefresh[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dash.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"count": len(dash.Records())})
	}
}

func RecordCreate[T any](dash *dashboard.Dashboard[T], decode DecodeFunc[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := decode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := dash.Create(r.Context(), rec); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rec)
	}
}

func RecordUpdate[T any](dash *dashboard.Dashboard[T], decode DecodeFunc[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "record id is required"))
			return
		}
		rec, err := decode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := dash.Update(r.Context(), id, rec); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rec)
	}
}

func RecordToggleSelect[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		selected, err := dash.ToggleSelect(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": id, "selected": selected, "selection": dash.Selected()})
	}
}

type selectManyRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1"`
	Toggle bool     `json:"toggle"`
}

// RecordSelectMany selects the visible ids, or flips them all when toggle is set.
func RecordSelectMany[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectManyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state := dash.SelectAll
		if req.Toggle {
			state = dash.ToggleSelectAll
		}
		responses.WriteSuccess(w, map[string]any{"selectionState": state(req.IDs), "selection": dash.Selected()})
	}
}

func RecordClearSelection[T any](dash *dashboard.Dashboard[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dash.ClearSelection()
		responses.WriteSuccess(w, map[string]any{"selection": []string{}})
	}
}

func RecordEditTarget[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := dash.EditTarget()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rec)
	}
}

// RecordDelete deletes the current selection and returns per-id results.
func RecordDelete[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := dash.DeleteSelected(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func RecordImport[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid upload"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required").
				WithDetails(map[string]string{"file": "is required"}))
			return
		}
		defer func() { _ = file.Close() }()

		count, err := dash.Import(r.Context(), header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int{"imported": count})
	}
}

func RecordExport[T any](dash *dashboard.Dashboard[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := spreadsheet.ParseExportFormat(r.URL.Query().Get("format"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var buf bytes.Buffer
		if err := dash.Export(&buf, format); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAttachment(w, dashboard.ExportFilename(dash.Resource(), format), format.ContentType(), buf.Bytes())
	}
}

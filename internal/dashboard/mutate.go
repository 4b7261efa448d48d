package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/spreadsheet"
)

// Create sends a new record. Local state only changes through the refetch after success.
func (d *Dashboard[T]) Create(ctx context.Context, rec T) (err error) {
	ctx = d.logContext(ctx, ActionCreate)
	done, err := d.begin(ActionCreate)
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	rec = d.normalize(rec)
	ctx = d.logg.WithRecordID(ctx, d.schema.ID(rec))
	if err := d.validate(ctx, rec); err != nil {
		return d.fail(ctx, ActionCreate, err)
	}
	if err := d.gateway.Create(ctx, rec); err != nil {
		return d.fail(ctx, ActionCreate, err)
	}

	d.notify(ActionCreate, enums.NoticeSuccess, fmt.Sprintf("%s %s created", singular(d.schema.Resource), d.schema.ID(rec)))
	d.reconcile(ctx, ActionCreate)
	return nil
}

// Update replaces the record addressed by id, which must be in the current collection.
func (d *Dashboard[T]) Update(ctx context.Context, id string, rec T) (err error) {
	ctx = d.logg.WithRecordID(d.logContext(ctx, ActionUpdate), id)
	done, err := d.begin(ActionUpdate)
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	if _, ok := d.store.Get(id); !ok {
		return d.fail(ctx, ActionUpdate, pkgerrors.New(pkgerrors.CodeNotFound, "record is not in the current list").
			WithDetails(map[string]any{"id": id}))
	}
	rec = d.normalize(rec)
	if d.schema.ImmutableID && d.schema.ID(rec) != id {
		return d.fail(ctx, ActionUpdate, pkgerrors.New(pkgerrors.CodeValidation, "identifier cannot be changed").
			WithDetails(map[string]any{"id": id, "submitted": d.schema.ID(rec)}))
	}
	if err := d.validate(ctx, rec); err != nil {
		return d.fail(ctx, ActionUpdate, err)
	}
	if err := d.gateway.Update(ctx, id, rec); err != nil {
		return d.fail(ctx, ActionUpdate, err)
	}

	d.notify(ActionUpdate, enums.NoticeSuccess, fmt.Sprintf("%s %s updated", singular(d.schema.Resource), id))
	d.reconcile(ctx, ActionUpdate)
	return nil
}

// EditSelected updates the single selected record.
func (d *Dashboard[T]) EditSelected(ctx context.Context, rec T) error {
	target, err := d.EditTarget()
	if err != nil {
		return err
	}
	return d.Update(ctx, d.schema.ID(target), rec)
}

// Import decodes the first sheet of an uploaded file and bulk-creates its rows.
// It returns the number of records sent.
func (d *Dashboard[T]) Import(ctx context.Context, filename string, r io.Reader) (count int, err error) {
	ctx = d.logg.WithField(d.logContext(ctx, ActionImport), "file", filename)
	done, err := d.begin(ActionImport)
	if err != nil {
		return 0, err
	}
	defer func() { done(err) }()

	format, err := spreadsheet.FormatFromFilename(filename)
	if err != nil {
		return 0, d.fail(ctx, ActionImport, err)
	}
	rows, err := spreadsheet.Read(r, format)
	if err != nil {
		return 0, d.fail(ctx, ActionImport, err)
	}
	if len(rows) == 0 {
		return 0, d.fail(ctx, ActionImport, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no data rows"))
	}
	recs, err := records.DecodeRows(d.schema, rows)
	if err != nil {
		return 0, d.fail(ctx, ActionImport, err)
	}
	if err := d.gateway.BulkCreate(ctx, recs); err != nil {
		return 0, d.fail(ctx, ActionImport, err)
	}

	d.notify(ActionImport, enums.NoticeSuccess, fmt.Sprintf("imported %d %s", len(recs), d.schema.Resource))
	d.reconcile(ctx, ActionImport)
	return len(recs), nil
}

// Export writes the whole in-memory collection. No request is made.
func (d *Dashboard[T]) Export(w io.Writer, format spreadsheet.Format) error {
	sheet := records.ToSheet(d.schema, d.store.Records())
	return spreadsheet.Write(w, format, sheet)
}

func (d *Dashboard[T]) normalize(rec T) T {
	if d.schema.Normalize != nil {
		return d.schema.Normalize(rec)
	}
	return rec
}

func (d *Dashboard[T]) validate(ctx context.Context, rec T) error {
	if d.schema.ID(rec) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "record identifier is required")
	}
	if d.check == nil {
		return nil
	}
	return d.check(ctx, rec)
}

// reconcile clears the selection and refetches after a successful mutation. A failed
// refetch is reported as a warning; the mutation itself already succeeded.
func (d *Dashboard[T]) reconcile(ctx context.Context, action string) {
	d.store.ClearSelection()
	list, err := d.gateway.List(ctx)
	if err != nil {
		d.logg.Warn(d.logg.WithField(ctx, "error", err.Error()), "refetch after "+action+" failed")
		d.notify(ActionRefresh, enums.NoticeWarning, fmt.Sprintf("%s saved but the list could not be reloaded", singular(d.schema.Resource)))
		return
	}
	d.store.Replace(list)
}

package dashboard

import (
	"context"

	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

// Refresh refetches the collection. On failure the store keeps its previous contents.
func (d *Dashboard[T]) Refresh(ctx context.Context) error {
	ctx = d.logContext(ctx, ActionRefresh)
	list, err := d.gateway.List(ctx)
	if err != nil {
		return d.fail(ctx, ActionRefresh, err)
	}
	d.store.Replace(list)
	d.logg.Debug(d.logg.WithField(ctx, "count", len(list)), "collection refreshed")
	return nil
}

// View is one rendered page plus its selection state.
type View[T any] struct {
	records.Page[T]
	Selected       []string               `json:"selected"`
	SelectionState records.SelectionState `json:"selectionState"`
	Status         StateInfo              `json:"status"`
}

// View projects the in-memory collection. A zero page size uses the dashboard default.
func (d *Dashboard[T]) View(q records.Query) (View[T], error) {
	if q.PageSize <= 0 {
		q.PageSize = d.pageSize
	}
	page, err := records.Project(d.store.Records(), d.schema, q)
	if err != nil {
		return View[T]{}, err
	}
	visible := records.IDs(page.Items, d.schema)
	return View[T]{
		Page:           page,
		Selected:       d.store.Selected(),
		SelectionState: d.store.SelectionState(visible),
		Status:         d.State(),
	}, nil
}

func (d *Dashboard[T]) Records() []T {
	return d.store.Records()
}

func (d *Dashboard[T]) ToggleSelect(id string) (bool, error) {
	return d.store.ToggleSelect(id)
}

func (d *Dashboard[T]) SelectAll(visibleIDs []string) records.SelectionState {
	d.store.SelectAll(visibleIDs)
	return d.store.SelectionState(visibleIDs)
}

func (d *Dashboard[T]) ToggleSelectAll(visibleIDs []string) records.SelectionState {
	return d.store.ToggleSelectAll(visibleIDs)
}

func (d *Dashboard[T]) ClearSelection() {
	d.store.ClearSelection()
}

func (d *Dashboard[T]) Selected() []string {
	return d.store.Selected()
}

// EditTarget returns the record to edit. Exactly one record must be selected.
func (d *Dashboard[T]) EditTarget() (T, error) {
	selected := d.store.SelectedRecords()
	if len(selected) != 1 {
		var zero T
		msg := "select exactly one record to edit"
		if len(selected) == 0 {
			msg = "no record selected"
		}
		d.notify(ActionUpdate, enums.NoticeWarning, msg)
		return zero, pkgerrors.New(pkgerrors.CodePrecondition, msg).
			WithDetails(map[string]any{"selected": len(selected)})
	}
	return selected[0], nil
}

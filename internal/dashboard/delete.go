package dashboard

import (
	"context"
	"fmt"

	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DeleteResult is the outcome of one per-id delete request.
type DeleteResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`

	err error
}

func (r DeleteResult) Err() error {
	return r.err
}

// DeleteReport lists per-id results in request order.
type DeleteReport struct {
	Results []DeleteResult `json:"results"`
}

func (r DeleteReport) Failed() []string {
	var ids []string
	for _, res := range r.Results {
		if !res.OK {
			ids = append(ids, res.ID)
		}
	}
	return ids
}

func (r DeleteReport) Succeeded() []string {
	var ids []string
	for _, res := range r.Results {
		if res.OK {
			ids = append(ids, res.ID)
		}
	}
	return ids
}

// DeleteSelected deletes every selected record.
func (d *Dashboard[T]) DeleteSelected(ctx context.Context) (DeleteReport, error) {
	return d.DeleteMany(ctx, d.store.Selected())
}

// DeleteMany issues one delete per id concurrently and waits for all of them.
// When any fails the store and selection are left as they were and the error lists the
// failed ids; deletes that already succeeded are not rolled back.
func (d *Dashboard[T]) DeleteMany(ctx context.Context, ids []string) (report DeleteReport, err error) {
	ctx = d.logContext(ctx, ActionDelete)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return DeleteReport{}, d.fail(ctx, ActionDelete, pkgerrors.New(pkgerrors.CodePrecondition, "no record selected").
			WithDetails(map[string]any{"selected": 0}))
	}
	done, err := d.begin(ActionDelete)
	if err != nil {
		return DeleteReport{}, err
	}
	defer func() { done(err) }()

	results := make([]DeleteResult, len(ids))
	var g errgroup.Group
	g.SetLimit(d.maxDeletes)
	for i, id := range ids {
		g.Go(func() error {
			reqErr := d.gateway.Delete(d.logg.WithRecordID(ctx, id), id)
			results[i] = DeleteResult{ID: id, OK: reqErr == nil, err: reqErr}
			if reqErr != nil {
				results[i].Error = reqErr.Error()
				results[i].Code = string(pkgerrors.CodeOf(reqErr))
			}
			return nil
		})
	}
	_ = g.Wait()
	report = DeleteReport{Results: results}

	var combined error
	for _, res := range results {
		if res.err != nil {
			combined = multierr.Append(combined, fmt.Errorf("%s: %w", res.ID, res.err))
		}
	}
	if combined != nil {
		failed := report.Failed()
		err = pkgerrors.Wrap(pkgerrors.CodePartialFailure, combined, fmt.Sprintf("%d of %d deletes failed", len(failed), len(ids))).
			WithDetails(map[string]any{"failed": failed, "succeeded": report.Succeeded()})
		return report, d.fail(ctx, ActionDelete, err)
	}

	d.notify(ActionDelete, enums.NoticeSuccess, fmt.Sprintf("deleted %d %s", len(ids), d.schema.Resource))
	d.reconcile(ctx, ActionDelete)
	return report, nil
}

// uniqueIDs drops blank and repeated ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

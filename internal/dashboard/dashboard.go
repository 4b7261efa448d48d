// Package dashboard runs the create/update/delete/import lifecycle of one record collection
// on top of the record store and the catalog API.
package dashboard

import (
	"context"
	"sync"

	"github.com/angelmondragon/catalog-admin/internal/notices"
	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/angelmondragon/catalog-admin/pkg/pagination"
)

const (
	ActionRefresh = "refresh"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionImport  = "import"
	ActionExport  = "export"

	defaultMaxConcurrentDeletes = 8
)

// Gateway is the remote collection a dashboard reconciles against.
type Gateway[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) error
	Update(ctx context.Context, id string, rec T) error
	Delete(ctx context.Context, id string) error
	BulkCreate(ctx context.Context, recs []T) error
}

// CheckFunc validates a record before it is sent.
type CheckFunc[T any] func(ctx context.Context, rec T) error

type Params[T any] struct {
	Schema               records.Schema[T]
	Gateway              Gateway[T]
	Check                CheckFunc[T]
	Notices              notices.Publisher
	Logger               *logger.Logger
	PageSize             int
	MaxConcurrentDeletes int
}

// Dashboard owns one collection. Only one mutation may be in flight at a time.
type Dashboard[T any] struct {
	schema     records.Schema[T]
	gateway    Gateway[T]
	check      CheckFunc[T]
	notices    notices.Publisher
	logg       *logger.Logger
	pageSize   int
	maxDeletes int
	store      *records.Store[T]

	mu      sync.Mutex
	state   enums.SubmitState
	action  string
	lastErr string
}

func New[T any](p Params[T]) *Dashboard[T] {
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	pub := p.Notices
	if pub == nil {
		pub = notices.Discard{}
	}
	maxDeletes := p.MaxConcurrentDeletes
	if maxDeletes <= 0 {
		maxDeletes = defaultMaxConcurrentDeletes
	}
	return &Dashboard[T]{
		schema:     p.Schema,
		gateway:    p.Gateway,
		check:      p.Check,
		notices:    pub,
		logg:       logg,
		pageSize:   pagination.NormalizePageSize(p.PageSize, pagination.DefaultPageSize),
		maxDeletes: maxDeletes,
		store:      records.NewStore(p.Schema),
		state:      enums.SubmitIdle,
	}
}

// Resource names the collection, e.g. "products".
func (d *Dashboard[T]) Resource() string {
	return d.schema.Resource
}

func (d *Dashboard[T]) Schema() records.Schema[T] {
	return d.schema
}

// StateInfo is the submit state exposed to the presentation layer.
type StateInfo struct {
	State     enums.SubmitState `json:"state"`
	Action    string            `json:"action,omitempty"`
	LastError string            `json:"lastError,omitempty"`
}

func (d *Dashboard[T]) State() StateInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return StateInfo{State: d.state, Action: d.action, LastError: d.lastErr}
}

// begin moves the dashboard from idle to submitting. The returned func moves back to idle and records the outcome.
func (d *Dashboard[T]) begin(action string) (func(error), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == enums.SubmitSubmitting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "another action is in progress").
			WithDetails(map[string]any{"resource": d.schema.Resource, "action": d.action})
	}
	d.state = enums.SubmitSubmitting
	d.action = action
	return func(err error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.state = enums.SubmitIdle
		d.action = ""
		d.lastErr = ""
		if err != nil {
			d.lastErr = err.Error()
		}
	}, nil
}

func (d *Dashboard[T]) logContext(ctx context.Context, action string) context.Context {
	ctx = d.logg.WithResource(ctx, d.schema.Resource)
	return d.logg.WithAction(ctx, action)
}

func (d *Dashboard[T]) notify(action string, level enums.NoticeLevel, msg string) {
	d.notices.Publish(notices.Notice{
		Resource: d.schema.Resource,
		Action:   action,
		Level:    level,
		Message:  msg,
	})
}

func (d *Dashboard[T]) fail(ctx context.Context, action string, err error) error {
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeValidation, pkgerrors.CodePrecondition, pkgerrors.CodeCanceled:
		d.logg.Warn(d.logg.WithField(ctx, "error", err.Error()), action+" rejected")
	default:
		d.logg.Error(ctx, action+" failed", err)
	}
	d.notify(action, enums.NoticeError, failureMessage(d.schema.Resource, action, err))
	return err
}

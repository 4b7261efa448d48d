package catalogapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/catalog-admin/pkg/config"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

const idPlaceholder = "{id}"

// ResourcePaths locates one REST collection. Item must contain {id}.
type ResourcePaths struct {
	Name       string
	Collection string
	Item       string
	Bulk       string
}

func ProductPaths(cfg config.CatalogAPIConfig) ResourcePaths {
	return ResourcePaths{Name: "products", Collection: cfg.ProductsPath, Item: cfg.ProductItemPath, Bulk: cfg.ProductsBulkPath}
}

func PromotionPaths(cfg config.CatalogAPIConfig) ResourcePaths {
	return ResourcePaths{Name: "promotions", Collection: cfg.PromotionsPath, Item: cfg.PromotionItemPath, Bulk: cfg.PromotionsBulkPath}
}

// CategoryPaths only supports List.
func CategoryPaths(cfg config.CatalogAPIConfig) ResourcePaths {
	return ResourcePaths{Name: "categories", Collection: cfg.ActiveCategoriesPath}
}

// Resource is a typed view of one collection.
type Resource[T any] struct {
	client *Client
	paths  ResourcePaths
}

func NewResource[T any](client *Client, paths ResourcePaths) *Resource[T] {
	return &Resource[T]{client: client, paths: paths}
}

func (r *Resource[T]) Name() string {
	return r.paths.Name
}

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, r.paths.Name, "list", http.MethodGet, r.paths.Collection, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, rec T) error {
	return r.client.do(ctx, r.paths.Name, "create", http.MethodPost, r.paths.Collection, rec, nil)
}

func (r *Resource[T]) Update(ctx context.Context, id string, rec T) error {
	path, err := r.itemPath(id)
	if err != nil {
		return err
	}
	return r.client.do(ctx, r.paths.Name, "update", http.MethodPut, path, rec, nil)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	path, err := r.itemPath(id)
	if err != nil {
		return err
	}
	return r.client.do(ctx, r.paths.Name, "delete", http.MethodDelete, path, nil, nil)
}

// BulkCreate posts every record as one JSON array.
func (r *Resource[T]) BulkCreate(ctx context.Context, recs []T) error {
	if strings.TrimSpace(r.paths.Bulk) == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, r.paths.Name+" has no bulk endpoint")
	}
	if recs == nil {
		recs = []T{}
	}
	return r.client.do(ctx, r.paths.Name, "bulk_create", http.MethodPost, r.paths.Bulk, recs, nil)
}

func (r *Resource[T]) itemPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "record id is required")
	}
	if !strings.Contains(r.paths.Item, idPlaceholder) {
		return "", pkgerrors.New(pkgerrors.CodeInternal, r.paths.Name+" has no item endpoint")
	}
	return strings.ReplaceAll(r.paths.Item, idPlaceholder, url.PathEscape(id)), nil
}

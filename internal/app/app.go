// Package app wires the catalog client, caches, notices and dashboards shared by the
// API server and the CLI.
package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/catalog-admin/internal/categories"
	"github.com/angelmondragon/catalog-admin/internal/dashboard"
	"github.com/angelmondragon/catalog-admin/internal/notices"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
	"github.com/angelmondragon/catalog-admin/pkg/catalogapi"
	"github.com/angelmondragon/catalog-admin/pkg/config"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/angelmondragon/catalog-admin/pkg/metrics"
	"github.com/angelmondragon/catalog-admin/pkg/redis"
)

// Application holds every long-lived component.
type Application struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry

	Client     *catalogapi.Client
	Cache      *redis.Client
	Categories *categories.Service
	Bus        *notices.Bus
	Notices    *notices.Recorder

	Products   *dashboard.Dashboard[products.Product]
	Promotions *dashboard.Dashboard[promotions.Promotion]
}

type options struct {
	httpClient *http.Client
	skipCache  bool
	logNotices bool
}

type Option func(*options)

// WithHTTPClient replaces the catalog API transport (used in tests).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithoutCache skips Redis even when it is configured.
func WithoutCache() Option {
	return func(o *options) { o.skipCache = true }
}

// WithNoticeLogging writes every notice through the logger.
func WithNoticeLogging() Option {
	return func(o *options) { o.logNotices = true }
}

// New builds the application. Redis is only dialed when configured.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if logg == nil {
		logg = logger.Nop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	clientOpts := []catalogapi.Option{
		catalogapi.WithLogger(logg),
		catalogapi.WithMetrics(metrics.NewGatewayMetrics(reg)),
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, catalogapi.WithHTTPClient(o.httpClient))
	}
	client, err := catalogapi.NewClient(cfg.API, clientOpts...)
	if err != nil {
		return nil, err
	}

	a := &Application{
		Config:   cfg,
		Logger:   logg,
		Registry: reg,
		Client:   client,
		Bus:      notices.NewBus(),
		Notices:  notices.NewRecorder(cfg.Dashboard.NoticeHistory),
	}

	if err := a.Bus.Subscribe(a.Notices.Record); err != nil {
		return nil, err
	}
	if o.logNotices {
		if err := a.Bus.Subscribe(notices.LogSubscriber(logg)); err != nil {
			return nil, err
		}
	}

	catParams := categories.ServiceParams{
		Lister: catalogapi.NewResource[categories.Category](client, catalogapi.CategoryPaths(cfg.API)),
		TTL:    cfg.Redis.CategoryCacheTTL,
		Logger: logg,
	}
	if cfg.Redis.Enabled() && !o.skipCache {
		cache, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		a.Cache = cache
		catParams.Cache = cache
	}
	a.Categories = categories.NewService(catParams)

	a.Products = dashboard.New(dashboard.Params[products.Product]{
		Schema:               products.Schema,
		Gateway:              catalogapi.NewResource[products.Product](client, catalogapi.ProductPaths(cfg.API)),
		Check:                products.Checker{Categories: a.Categories}.Check,
		Notices:              a.Bus,
		Logger:               logg,
		PageSize:             cfg.Dashboard.PageSize,
		MaxConcurrentDeletes: cfg.API.MaxConcurrentDeletes,
	})
	a.Promotions = dashboard.New(dashboard.Params[promotions.Promotion]{
		Schema:               promotions.Schema,
		Gateway:              catalogapi.NewResource[promotions.Promotion](client, catalogapi.PromotionPaths(cfg.API)),
		Notices:              a.Bus,
		Logger:               logg,
		PageSize:             cfg.Dashboard.PageSize,
		MaxConcurrentDeletes: cfg.API.MaxConcurrentDeletes,
	})

	return a, nil
}

// CachePinger returns the readiness pinger, or nil when no cache is configured.
func (a *Application) CachePinger() redis.Pinger {
	if a.Cache == nil {
		return nil
	}
	return a.Cache
}

// Warm loads both collections. Failures are returned together; each one was already
// published as a notice.
func (a *Application) Warm(ctx context.Context) error {
	return multierr.Combine(
		a.Products.Refresh(ctx),
		a.Promotions.Refresh(ctx),
	)
}

func (a *Application) Close() error {
	if a == nil {
		return nil
	}
	return a.Cache.Close()
}

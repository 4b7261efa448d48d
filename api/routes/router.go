package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/catalog-admin/api/controllers"
	"github.com/angelmondragon/catalog-admin/api/middleware"
	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/internal/dashboard"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

func NewRouter(a *app.Application) http.Handler {
	cfg := a.Config
	logg := a.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, a.CachePinger()))
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			mountRecords(r, a.Products, controllers.DecodeProduct, logg)
		})
		r.Route("/promotions", func(r chi.Router) {
			mountRecords(r, a.Promotions, controllers.DecodePromotion, logg)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesActive(a.Categories, logg))
			r.Get("/{name}/sizes", controllers.CategorySizes(a.Categories))
		})
		r.Get("/notices", controllers.NoticesRecent(a.Notices))
	})

	return r
}

// mountRecords exposes one dashboard: table view, selection, mutations and spreadsheets.
func mountRecords[T any](r chi.Router, dash *dashboard.Dashboard[T], decode controllers.DecodeFunc[T], logg *logger.Logger) {
	r.Get("/", controllers.RecordView(dash, logg))
	r.Post("/", controllers.RecordCreate(dash, decode, logg))
	r.Post("/refresh", controllers.RecordRefresh(dash, logg))
	r.Post("/import", controllers.RecordImport(dash, logg))
	r.Get("/export", controllers.RecordExport(dash, logg))

	r.Post("/delete", controllers.RecordDelete(dash, logg))

	r.Route("/selection", func(r chi.Router) {
		r.Post("/", controllers.RecordSelectMany(dash, logg))
		r.Delete("/", controllers.RecordClearSelection(dash))
		r.Get("/edit-target", controllers.RecordEditTarget(dash, logg))
		r.Post("/{id}", controllers.RecordToggleSelect(dash, logg))
	})

	r.Put("/{id}", controllers.RecordUpdate(dash, decode, logg))
}

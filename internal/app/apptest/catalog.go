// Package apptest runs an in-memory catalog API for handler and CLI tests.
package apptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/catalog-admin/internal/categories"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
	"github.com/angelmondragon/catalog-admin/pkg/config"
)

// Catalog is a fake catalog API keyed by sku and promo code.
type Catalog struct {
	mu         sync.Mutex
	products   map[string]products.Product
	promotions map[string]promotions.Promotion
	categories []categories.Category

	failDeletes map[string]bool
	failList    bool
	calls       map[string]int

	Server *httptest.Server
}

// NewCatalog starts the fake and closes it with the test.
func NewCatalog(t testing.TB) *Catalog {
	t.Helper()
	c := &Catalog{
		products:    map[string]products.Product{},
		promotions:  map[string]promotions.Promotion{},
		failDeletes: map[string]bool{},
		calls:       map[string]int{},
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", c.listProducts)
		r.Post("/products", c.createProducts(false))
		r.Post("/products/bulk", c.createProducts(true))
		r.Put("/products/sku/{id}", c.updateProduct)
		r.Delete("/products/sku/{id}", c.deleteProduct)

		r.Get("/promotions", c.listPromotions)
		r.Post("/promotions", c.createPromotions(false))
		r.Post("/promotions/bulk", c.createPromotions(true))
		r.Put("/promotions/{id}", c.updatePromotion)
		r.Delete("/promotions/{id}", c.deletePromotion)

		r.Get("/categories/active", c.listCategories)
	})

	c.Server = httptest.NewServer(r)
	t.Cleanup(c.Server.Close)
	return c
}

// BaseURL is the root every configured path hangs off.
func (c *Catalog) BaseURL() string {
	return c.Server.URL + "/api"
}

// Config returns a complete configuration pointed at the fake.
func (c *Catalog) Config() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0", LogLevel: "debug"},
		API: config.CatalogAPIConfig{
			BaseURL:               c.BaseURL(),
			Timeout:               5 * time.Second,
			MaxConcurrentDeletes:  4,
			ProductsPath:          "/products",
			ProductItemPath:       "/products/sku/{id}",
			ProductsBulkPath:      "/products/bulk",
			PromotionsPath:        "/promotions",
			PromotionItemPath:     "/promotions/{id}",
			PromotionsBulkPath:    "/promotions/bulk",
			ActiveCategoriesPath:  "/categories/active",
			ResponseBodyReadLimit: 1024,
		},
		Dashboard: config.DashboardConfig{PageSize: 4, NoticeHistory: 20},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func (c *Catalog) SeedProducts(list ...products.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range list {
		c.products[p.SKU] = p
	}
}

func (c *Catalog) SeedPromotions(list ...promotions.Promotion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range list {
		c.promotions[p.PromoCode] = p
	}
}

func (c *Catalog) SeedCategories(list ...categories.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = append(c.categories, list...)
}

func (c *Catalog) Product(sku string) (products.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[sku]
	return p, ok
}

func (c *Catalog) Promotion(code string) (promotions.Promotion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.promotions[code]
	return p, ok
}

// FailDelete makes DELETE return 500 for the given ids.
func (c *Catalog) FailDelete(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.failDeletes[id] = true
	}
}

// FailLists makes collection GETs return 503 until called again with false.
func (c *Catalog) FailLists(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failList = fail
}

// CallCount reports how often a "METHOD /path-pattern" was hit.
func (c *Catalog) CallCount(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

func (c *Catalog) track(r *http.Request) {
	key := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
	c.mu.Lock()
	c.calls[key]++
	c.mu.Unlock()
}

func (c *Catalog) listProducts(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	c.mu.Lock()
	if c.failList {
		c.mu.Unlock()
		http.Error(w, "catalog offline", http.StatusServiceUnavailable)
		return
	}
	out := make([]products.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	c.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (c *Catalog) createProducts(bulk bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.track(r)
		var list []products.Product
		if bulk {
			if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		} else {
			var p products.Product
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			list = append(list, p)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, p := range list {
			if _, exists := c.products[p.SKU]; exists {
				http.Error(w, "duplicate sku "+p.SKU, http.StatusConflict)
				return
			}
		}
		for _, p := range list {
			c.products[p.SKU] = p
		}
		writeJSON(w, http.StatusCreated, list)
	}
}

func (c *Catalog) updateProduct(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	id := chi.URLParam(r, "id")
	var p products.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		http.Error(w, "no such sku", http.StatusNotFound)
		return
	}
	delete(c.products, id)
	c.products[p.SKU] = p
	writeJSON(w, http.StatusOK, p)
}

func (c *Catalog) deleteProduct(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	id := chi.URLParam(r, "id")
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDeletes[id] {
		http.Error(w, "delete refused", http.StatusInternalServerError)
		return
	}
	delete(c.products, id)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Catalog) listPromotions(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	c.mu.Lock()
	if c.failList {
		c.mu.Unlock()
		http.Error(w, "catalog offline", http.StatusServiceUnavailable)
		return
	}
	out := make([]promotions.Promotion, 0, len(c.promotions))
	for _, p := range c.promotions {
		out = append(out, p)
	}
	c.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (c *Catalog) createPromotions(bulk bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.track(r)
		var list []promotions.Promotion
		if bulk {
			if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		} else {
			var p promotions.Promotion
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			list = append(list, p)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, p := range list {
			c.promotions[p.PromoCode] = p
		}
		writeJSON(w, http.StatusCreated, list)
	}
}

func (c *Catalog) updatePromotion(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	id := chi.URLParam(r, "id")
	var p promotions.Promotion
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.promotions[id]; !ok {
		http.Error(w, "no such promotion", http.StatusNotFound)
		return
	}
	c.promotions[id] = p
	writeJSON(w, http.StatusOK, p)
}

func (c *Catalog) deletePromotion(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	id := chi.URLParam(r, "id")
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDeletes[id] {
		http.Error(w, "delete refused", http.StatusInternalServerError)
		return
	}
	delete(c.promotions, id)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Catalog) listCategories(w http.ResponseWriter, r *http.Request) {
	c.track(r)
	c.mu.Lock()
	out := append([]categories.Category{}, c.categories...)
	c.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

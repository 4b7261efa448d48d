package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/internal/app/apptest"
	"github.com/angelmondragon/catalog-admin/internal/categories"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, catalog *apptest.Catalog) (http.Handler, *app.Application) {
	t.Helper()
	a, err := app.New(context.Background(), catalog.Config(), logger.Nop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return NewRouter(a), a
}

func seededCatalog(t *testing.T) *apptest.Catalog {
	t.Helper()
	catalog := apptest.NewCatalog(t)
	catalog.SeedProducts(
		products.Product{SKU: "SKU-1", Name: "Linen Shirt", CategoryName: "Men", Size: "M", Price: decimal.NewFromInt(40), Discount: decimal.NewFromInt(25)},
		products.Product{SKU: "SKU-2", Name: "Summer Dress", CategoryName: "Women", Size: "S", Price: decimal.NewFromInt(60)},
		products.Product{SKU: "SKU-3", Name: "Runner", CategoryName: "Footwear", Size: "9", Price: decimal.NewFromInt(90), Discount: decimal.NewFromInt(10)},
	)
	catalog.SeedPromotions(
		promotions.Promotion{PromoCode: "WELCOME", PromoType: enums.PromoTypeDiscount, Description: "first order", PromoAmount: decimal.NewFromInt(10)},
	)
	return catalog
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	var env envelope
	if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v body=%s", method, target, err, resp.Body.String())
		}
	}
	return resp, env
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return do(t, h, method, target, strings.NewReader(body), "application/json")
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, apptest.NewCatalog(t))

	resp, _ := do(t, router, http.MethodGet, "/health/live", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected live 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Catalog-Env") != "test" {
		t.Fatalf("missing env header")
	}

	resp, env := do(t, router, http.MethodGet, "/health/ready", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected ready 200 got %d", resp.Code)
	}
	if !strings.Contains(string(env.Data), `"cache":"disabled"`) {
		t.Fatalf("expected disabled cache check, got %s", env.Data)
	}

	resp, _ = do(t, router, http.MethodGet, "/metrics", nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "go_goroutines") {
		t.Fatalf("expected metrics exposition, got %d", resp.Code)
	}
}

func TestProductsViewSearchSortPaginate(t *testing.T) {
	router, _ := newTestRouter(t, seededCatalog(t))

	resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/products/refresh", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", resp.Code, resp.Body.String())
	}

	resp, env := do(t, router, http.MethodGet, "/api/v1/products?sort=price&order=desc&pageSize=2", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("view failed: %d %s", resp.Code, resp.Body.String())
	}
	var view struct {
		Items []struct {
			SKU           string  `json:"sku"`
			DiscountPrice float64 `json:"discountPrice"`
		} `json:"items"`
		TotalPages     int    `json:"totalPages"`
		TotalFiltered  int    `json:"totalFiltered"`
		SelectionState string `json:"selectionState"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.TotalFiltered != 3 || view.TotalPages != 2 || len(view.Items) != 2 {
		t.Fatalf("unexpected paging %+v", view)
	}
	if view.Items[0].SKU != "SKU-3" || view.Items[1].SKU != "SKU-2" {
		t.Fatalf("expected price desc order, got %+v", view.Items)
	}
	if view.Items[0].DiscountPrice != 81 {
		t.Fatalf("expected derived discount price 81, got %v", view.Items[0].DiscountPrice)
	}
	if view.SelectionState != "none" {
		t.Fatalf("expected no selection, got %s", view.SelectionState)
	}

	_, env = do(t, router, http.MethodGet, "/api/v1/products?q=shirt", nil, "")
	if !strings.Contains(string(env.Data), `"totalFiltered":1`) {
		t.Fatalf("expected one search hit, got %s", env.Data)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/products?sort=colour", nil, "")
	if resp.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error for unknown sort field, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestProductCreateAndValidation(t *testing.T) {
	catalog := seededCatalog(t)
	router, a := newTestRouter(t, catalog)

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/products", `{"sku":"SKU-9","name":"Sneaker","categoryName":"Footwear","size":"11","price":50,"discount":0}`)
	if resp.Code != http.StatusBadRequest || env.Error == nil {
		t.Fatalf("expected size validation error, got %d %s", resp.Code, resp.Body.String())
	}
	if _, ok := env.Error.Details["size"]; !ok {
		t.Fatalf("expected size detail, got %v", env.Error.Details)
	}

	resp, env = doJSON(t, router, http.MethodPost, "/api/v1/products", `{"sku":"SKU-9","name":"Sneaker","categoryName":"Footwear","size":"10","price":50}`)
	if resp.Code != http.StatusBadRequest || env.Error.Details["discount"] == nil {
		t.Fatalf("expected missing discount, got %d %s", resp.Code, resp.Body.String())
	}

	resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/products", `{"sku":"SKU-9","name":"Sneaker","categoryName":"Footwear","size":"10","price":50,"discount":20}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", resp.Code, resp.Body.String())
	}
	stored, ok := catalog.Product("SKU-9")
	if !ok || !stored.DiscountPrice.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected stored product with discount price 40, got %+v", stored)
	}
	if len(a.Products.Records()) != 4 {
		t.Fatalf("expected refetch after create, got %d records", len(a.Products.Records()))
	}

	resp, env = doJSON(t, router, http.MethodPost, "/api/v1/products", `{"sku":"SKU-9","name":"Sneaker","categoryName":"Footwear","size":"10","price":50,"discount":20}`)
	if resp.Code != http.StatusConflict || env.Error.Code != "CONFLICT" {
		t.Fatalf("expected conflict on duplicate sku, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestSelectionEditAndDelete(t *testing.T) {
	catalog := seededCatalog(t)
	router, _ := newTestRouter(t, catalog)
	doJSON(t, router, http.MethodPost, "/api/v1/products/refresh", "")

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/products/delete", "")
	if resp.Code != http.StatusPreconditionFailed || env.Error.Code != "PRECONDITION_FAILED" {
		t.Fatalf("expected precondition with empty selection, got %d %s", resp.Code, resp.Body.String())
	}

	resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/products/selection/SKU-404", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected unknown id rejected, got %d", resp.Code)
	}

	resp, _ = doJSON(t, router, http.MethodPost, "/api/v1/products/selection/SKU-1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", resp.Code, resp.Body.String())
	}
	resp, env = do(t, router, http.MethodGet, "/api/v1/products/selection/edit-target", nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(string(env.Data), `"sku":"SKU-1"`) {
		t.Fatalf("expected edit target SKU-1, got %d %s", resp.Code, resp.Body.String())
	}

	resp, _ = doJSON(t, router, http.MethodPut, "/api/v1/products/SKU-1", `{"sku":"SKU-1","name":"Linen Shirt II","categoryName":"Men","size":"L","price":45,"discount":0}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", resp.Code, resp.Body.String())
	}
	if p, _ := catalog.Product("SKU-1"); p.Name != "Linen Shirt II" {
		t.Fatalf("update not forwarded, got %+v", p)
	}

	resp, env = doJSON(t, router, http.MethodPost, "/api/v1/products/selection", `{"ids":["SKU-1","SKU-2"]}`)
	if resp.Code != http.StatusOK || !strings.Contains(string(env.Data), `"selectionState":"all"`) {
		t.Fatalf("select many failed: %d %s", resp.Code, resp.Body.String())
	}
	resp, env = do(t, router, http.MethodGet, "/api/v1/products/selection/edit-target", nil, "")
	if resp.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected precondition with two selected, got %d", resp.Code)
	}

	resp, env = doJSON(t, router, http.MethodPost, "/api/v1/products/delete", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", resp.Code, resp.Body.String())
	}
	if _, ok := catalog.Product("SKU-2"); ok {
		t.Fatalf("expected SKU-2 deleted")
	}
	if catalog.CallCount("DELETE /api/products/sku/{id}") != 2 {
		t.Fatalf("expected one delete per selected id")
	}

	_, env = do(t, router, http.MethodGet, "/api/v1/notices", nil, "")
	if !strings.Contains(string(env.Data), `"level":"success"`) {
		t.Fatalf("expected success notices, got %s", env.Data)
	}
}

func TestPartialDeleteIsNotASuccessStatus(t *testing.T) {
	catalog := seededCatalog(t)
	catalog.FailDelete("SKU-2")
	router, a := newTestRouter(t, catalog)
	doJSON(t, router, http.MethodPost, "/api/v1/products/refresh", "")
	doJSON(t, router, http.MethodPost, "/api/v1/products/selection", `{"ids":["SKU-1","SKU-2"]}`)

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/products/delete", "")
	if resp.Code != http.StatusBadGateway || env.Error.Code != "PARTIAL_FAILURE" {
		t.Fatalf("expected partial failure, got %d %s", resp.Code, resp.Body.String())
	}
	if failed, ok := env.Error.Details["failed"].([]any); !ok || len(failed) != 1 || failed[0] != "SKU-2" {
		t.Fatalf("expected SKU-2 listed as failed, got %v", env.Error.Details)
	}
	if len(a.Products.Selected()) != 2 {
		t.Fatalf("selection should be kept after partial failure")
	}
}

func TestExportThenImportCSV(t *testing.T) {
	router, _ := newTestRouter(t, seededCatalog(t))
	doJSON(t, router, http.MethodPost, "/api/v1/promotions/refresh", "")

	resp, _ := do(t, router, http.MethodGet, "/api/v1/promotions/export?format=csv", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), ".csv") {
		t.Fatalf("expected csv attachment, got %q", resp.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(resp.Body.String(), "WELCOME") {
		t.Fatalf("expected exported row, got %s", resp.Body.String())
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "promotions.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = part.Write([]byte("promoCode,promoType,description,promoAmount\nSUMMER,Cashback,summer sale,7.5\n"))
	_ = mw.Close()

	resp, env := do(t, router, http.MethodPost, "/api/v1/promotions/import", &body, mw.FormDataContentType())
	if resp.Code != http.StatusCreated || !strings.Contains(string(env.Data), `"imported":1`) {
		t.Fatalf("import failed: %d %s", resp.Code, resp.Body.String())
	}

	resp, _ = do(t, router, http.MethodGet, "/api/v1/promotions/export?format=xls", nil, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected xls rejected, got %d", resp.Code)
	}
}

func TestCategoriesAndSizes(t *testing.T) {
	catalog := apptest.NewCatalog(t)
	catalog.SeedCategories(categories.Category{CategoryID: "1", CategoryName: "Kids"})
	router, _ := newTestRouter(t, catalog)

	resp, env := do(t, router, http.MethodGet, "/api/v1/categories", nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(string(env.Data), `"categoryName":"Kids"`) {
		t.Fatalf("unexpected categories: %d %s", resp.Code, resp.Body.String())
	}

	_, env = do(t, router, http.MethodGet, "/api/v1/categories/Footwear/sizes", nil, "")
	if !strings.Contains(string(env.Data), `"sizes":["6","7","8","9","10"]`) {
		t.Fatalf("unexpected sizes: %s", env.Data)
	}
	_, env = do(t, router, http.MethodGet, "/api/v1/categories/Bags/sizes", nil, "")
	if !strings.Contains(string(env.Data), `"freeText":true`) {
		t.Fatalf("expected free text size for unknown category: %s", env.Data)
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, apptest.NewCatalog(t))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", resp.Header().Get("Access-Control-Allow-Origin"))
	}
}

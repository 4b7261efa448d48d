package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalog-admin/internal/app/apptest"
	"github.com/angelmondragon/catalog-admin/internal/categories"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

func newTestApp(t *testing.T, catalog *apptest.Catalog) *Application {
	t.Helper()
	a, err := New(context.Background(), catalog.Config(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewRequiresBaseURL(t *testing.T) {
	catalog := apptest.NewCatalog(t)
	cfg := catalog.Config()
	cfg.API.BaseURL = ""

	_, err := New(context.Background(), cfg, logger.Nop())
	require.Error(t, err)
}

func TestNewWithoutRedisLeavesCacheNil(t *testing.T) {
	a := newTestApp(t, apptest.NewCatalog(t))

	require.Nil(t, a.Cache)
	require.Nil(t, a.CachePinger())
	require.NoError(t, a.Close())
}

func TestWarmLoadsBothCollections(t *testing.T) {
	catalog := apptest.NewCatalog(t)
	catalog.SeedProducts(products.Product{SKU: "SKU-1", Name: "Tee", CategoryName: "Men", Size: "M", Price: decimal.NewFromInt(20), Discount: decimal.NewFromInt(10)})
	catalog.SeedPromotions(promotions.Promotion{PromoCode: "SPRING", PromoType: enums.PromoTypeDiscount, Description: "spring", PromoAmount: decimal.NewFromInt(5)})
	a := newTestApp(t, catalog)

	require.NoError(t, a.Warm(context.Background()))
	require.Len(t, a.Products.Records(), 1)
	require.Len(t, a.Promotions.Records(), 1)

	// derived price is recomputed on load
	require.True(t, a.Products.Records()[0].DiscountPrice.Equal(decimal.NewFromInt(18)))

	count, err := testutil.GatherAndCount(a.Registry, "catalogapi_requests_total")
	require.NoError(t, err)
	require.Positive(t, count)
}

func TestWarmFailurePublishesNotices(t *testing.T) {
	catalog := apptest.NewCatalog(t)
	catalog.FailLists(true)
	a := newTestApp(t, catalog)

	err := a.Warm(context.Background())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUpstreamStatus, pkgerrors.CodeOf(err))

	recent := a.Notices.Recent()
	require.Len(t, recent, 2)
	for _, n := range recent {
		require.Equal(t, enums.NoticeError, n.Level)
	}
}

func TestProductCreateChecksActiveCategories(t *testing.T) {
	catalog := apptest.NewCatalog(t)
	catalog.SeedCategories(
		categories.Category{CategoryID: "1", CategoryName: "Men"},
		categories.Category{CategoryID: "2", CategoryName: "Accessories"},
	)
	a := newTestApp(t, catalog)
	ctx := context.Background()

	err := a.Products.Create(ctx, products.Product{SKU: "SKU-9", Name: "Cap", CategoryName: "Women", Size: "M", Price: decimal.NewFromInt(5)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, stored := catalog.Product("SKU-9")
	require.False(t, stored)

	err = a.Products.Create(ctx, products.Product{SKU: "SKU-9", Name: "Cap", CategoryName: "Accessories", Size: "One size", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	got, stored := catalog.Product("SKU-9")
	require.True(t, stored)
	require.True(t, got.DiscountPrice.Equal(decimal.NewFromInt(5)))

	view, err := a.Products.View(records.Query{Search: "cap"})
	require.NoError(t, err)
	require.Equal(t, 1, view.TotalFiltered)
}

func TestPartialDeleteKeepsStore(t *testing.T) {
	catalog := apptest.NewCatalog(t)
	catalog.SeedPromotions(
		promotions.Promotion{PromoCode: "A", PromoType: enums.PromoTypeCashback, Description: "a", PromoAmount: decimal.NewFromInt(1)},
		promotions.Promotion{PromoCode: "B", PromoType: enums.PromoTypeCashback, Description: "b", PromoAmount: decimal.NewFromInt(2)},
	)
	catalog.FailDelete("B")
	a := newTestApp(t, catalog)
	ctx := context.Background()
	require.NoError(t, a.Promotions.Refresh(ctx))

	a.Promotions.SelectAll([]string{"A", "B"})
	report, err := a.Promotions.DeleteSelected(ctx)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodePartialFailure))
	require.Equal(t, []string{"A"}, report.Succeeded())
	require.Equal(t, []string{"B"}, report.Failed())

	_, stillThere := catalog.Promotion("B")
	require.True(t, stillThere)
	require.Len(t, a.Promotions.Records(), 2)
	require.ElementsMatch(t, []string{"A", "B"}, a.Promotions.Selected())
}

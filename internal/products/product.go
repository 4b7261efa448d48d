// Package products defines the product record, its table schema and entry-form rules.
package products

import (
	"encoding/json"

	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	Resource  = "products"
	SheetName = "Products"
)

// Product is one catalog row as exchanged with the catalog API.
type Product struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	CategoryName  string          `json:"categoryName"`
	Size          string          `json:"size"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
}

type productJSON struct {
	SKU           string      `json:"sku"`
	Name          string      `json:"name"`
	CategoryName  string      `json:"categoryName"`
	Size          string      `json:"size"`
	Price         json.Number `json:"price"`
	Discount      json.Number `json:"discount"`
	DiscountPrice json.Number `json:"discountPrice"`
}

// MarshalJSON writes the decimal fields as JSON numbers.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		SKU:           p.SKU,
		Name:          p.Name,
		CategoryName:  p.CategoryName,
		Size:          p.Size,
		Price:         money.Number(p.Price),
		Discount:      money.Number(p.Discount),
		DiscountPrice: money.Number(p.DiscountPrice),
	})
}

// WithDerived recomputes the discounted price from price and discount.
func (p Product) WithDerived() Product {
	p.DiscountPrice = money.Discounted(p.Price, p.Discount)
	return p
}

// Schema is the product table: searchable by name, sku and category, filterable by category.
var Schema = records.Schema[Product]{
	Resource:  Resource,
	SheetName: SheetName,
	ID:        func(p Product) string { return p.SKU },
	Fields: []records.Field[Product]{
		{Name: "sku", Kind: records.KindText, Text: func(p Product) string { return p.SKU }},
		{Name: "name", Kind: records.KindText, Text: func(p Product) string { return p.Name }},
		{Name: "categoryName", Kind: records.KindText, Text: func(p Product) string { return p.CategoryName }},
		{Name: "size", Kind: records.KindText, Text: func(p Product) string { return p.Size }},
		{Name: "price", Kind: records.KindNumber, Number: func(p Product) decimal.Decimal { return p.Price }},
		{Name: "discount", Kind: records.KindNumber, Number: func(p Product) decimal.Decimal { return p.Discount }},
		{Name: "discountPrice", Kind: records.KindNumber, Number: func(p Product) decimal.Decimal { return p.DiscountPrice }},
	},
	Search:      []string{"name", "sku", "categoryName"},
	FilterField: "categoryName",
	Normalize:   Product.WithDerived,
}

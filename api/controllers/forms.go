package controllers

import (
	"net/http"

	"github.com/angelmondragon/catalog-admin/api/validators"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
)

// DecodeProduct reads the product entry form.
func DecodeProduct(r *http.Request) (products.Product, error) {
	var form products.Form
	if err := validators.DecodeJSON(r, &form); err != nil {
		return products.Product{}, err
	}
	return form.Record()
}

// DecodePromotion reads the promotion entry form.
func DecodePromotion(r *http.Request) (promotions.Promotion, error) {
	var form promotions.Form
	if err := validators.DecodeJSON(r, &form); err != nil {
		return promotions.Promotion{}, err
	}
	return form.Record()
}

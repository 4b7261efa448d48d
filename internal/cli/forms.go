package cli

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/internal/dashboard"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
	"github.com/angelmondragon/catalog-admin/pkg/validation"
)

func pickProducts(a *app.Application) *dashboard.Dashboard[products.Product] {
	return a.Products
}

func pickPromotions(a *app.Application) *dashboard.Dashboard[promotions.Promotion] {
	return a.Promotions
}

// bindProductForm registers the product entry flags. Unset price or discount fail the
// required check the same way an empty form field does.
func bindProductForm(fs *pflag.FlagSet) func() (products.Product, error) {
	var form products.Form
	var price string
	var discount string
	fs.StringVar(&form.SKU, "sku", "", "product sku")
	fs.StringVar(&form.Name, "name", "", "product name")
	fs.StringVar(&form.CategoryName, "category", "", "category name")
	fs.StringVar(&form.Size, "size", "", "size, one of the category's options")
	fs.StringVar(&price, "price", "", "price, e.g. 19.99")
	fs.StringVar(&discount, "discount", "", "discount percent 0-100, e.g. 12.5")

	return func() (products.Product, error) {
		f := form
		if fs.Changed("price") {
			d, err := parseAmount("price", price)
			if err != nil {
				return products.Product{}, err
			}
			f.Price = &d
		}
		if fs.Changed("discount") {
			d, err := parseAmount("discount", discount)
			if err != nil {
				return products.Product{}, err
			}
			f.Discount = &d
		}
		return f.Record()
	}
}

func bindPromotionForm(fs *pflag.FlagSet) func() (promotions.Promotion, error) {
	var form promotions.Form
	var amount string
	fs.StringVar(&form.PromoCode, "code", "", "promo code")
	fs.StringVar(&form.PromoType, "type", "", "promo type: Cashback or Discount")
	fs.StringVar(&form.Description, "description", "", "description")
	fs.StringVar(&amount, "amount", "", "promo amount")

	return func() (promotions.Promotion, error) {
		f := form
		if fs.Changed("amount") {
			d, err := parseAmount("promoAmount", amount)
			if err != nil {
				return promotions.Promotion{}, err
			}
			f.PromoAmount = &d
		}
		return f.Record()
	}
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, validation.Field(field, "must be a number")
	}
	return d, nil
}

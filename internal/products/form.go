package products

import (
	"context"
	"slices"
	"strings"

	"github.com/angelmondragon/catalog-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/money"
	"github.com/angelmondragon/catalog-admin/pkg/validation"
	"github.com/shopspring/decimal"
)

// Form is the product entry form payload.
type Form struct {
	SKU          string           `json:"sku" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	CategoryName string           `json:"categoryName" validate:"required"`
	Size         string           `json:"size" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Discount     *decimal.Decimal `json:"discount" validate:"required"`
}

// FormFrom prefills the edit form from an existing product.
func FormFrom(p Product) Form {
	price := p.Price
	discount := p.Discount
	return Form{
		SKU:          p.SKU,
		Name:         p.Name,
		CategoryName: p.CategoryName,
		Size:         p.Size,
		Price:        &price,
		Discount:     &discount,
	}
}

// Record checks field presence and ranges and builds the product with its discount price.
func (f Form) Record() (Product, error) {
	f.SKU = strings.TrimSpace(f.SKU)
	f.Name = strings.TrimSpace(f.Name)
	f.CategoryName = strings.TrimSpace(f.CategoryName)
	f.Size = strings.TrimSpace(f.Size)
	if err := validation.Struct(f); err != nil {
		return Product{}, err
	}
	if f.Price.IsNegative() {
		return Product{}, validation.Field("price", "must be at least 0")
	}
	if !money.ValidPercent(*f.Discount) {
		return Product{}, validation.Field("discount", "must be between 0 and 100")
	}
	return Product{
		SKU:          f.SKU,
		Name:         f.Name,
		CategoryName: f.CategoryName,
		Size:         f.Size,
		Price:        *f.Price,
		Discount:     *f.Discount,
	}.WithDerived(), nil
}

// CategoryNamer lists the active category names offered by the form.
type CategoryNamer interface {
	Names(ctx context.Context) ([]string, error)
}

// Checker enforces the cross-field rules: known category and a size that category offers.
type Checker struct {
	Categories CategoryNamer
}

// Check validates a built product. Without a category source, or when it fails,
// the built-in categories are used.
func (c Checker) Check(ctx context.Context, p Product) error {
	details := map[string]string{}
	if p.Price.IsNegative() {
		details["price"] = "must be at least 0"
	}
	if !money.ValidPercent(p.Discount) {
		details["discount"] = "must be between 0 and 100"
	}

	allowed := c.categoryNames(ctx)
	category, ok := matchCategory(allowed, p.CategoryName)
	if !ok {
		details["categoryName"] = "must be one of " + strings.Join(allowed, " ")
	} else if options := SizeOptions(category); len(options) > 0 && !slices.Contains(options, p.Size) {
		details["size"] = "must be one of " + strings.Join(options, " ")
	}
	if strings.TrimSpace(p.Size) == "" {
		details["size"] = "is required"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func (c Checker) categoryNames(ctx context.Context) []string {
	if c.Categories != nil {
		if names, err := c.Categories.Names(ctx); err == nil && len(names) > 0 {
			return names
		}
	}
	builtIn := enums.ProductCategories()
	names := make([]string, len(builtIn))
	for i, cat := range builtIn {
		names[i] = cat.String()
	}
	return names
}

func matchCategory(allowed []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, name) {
			return candidate, true
		}
	}
	return "", false
}

// SizeOptions returns the sizes the form offers for a category. Categories outside the
// built-in set take a free-text size and return nil.
func SizeOptions(categoryName string) []string {
	category, err := enums.ParseProductCategory(categoryName)
	if err != nil {
		return nil
	}
	return category.SizeOptions()
}

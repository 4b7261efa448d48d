package enums

import (
	"fmt"
	"strings"
)

// ProductCategory is one of the built-in catalog categories offered by the entry form.
type ProductCategory string

const (
	ProductCategoryMen      ProductCategory = "Men"
	ProductCategoryWomen    ProductCategory = "Women"
	ProductCategoryKids     ProductCategory = "Kids"
	ProductCategoryFootwear ProductCategory = "Footwear"
)

var validProductCategories = []ProductCategory{
	ProductCategoryMen,
	ProductCategoryWomen,
	ProductCategoryKids,
	ProductCategoryFootwear,
}

var (
	apparelSizes  = []string{"S", "M", "L", "XL"}
	footwearSizes = []string{"6", "7", "8", "9", "10"}
)

// ProductCategories lists the built-in categories in form order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// SizeOptions returns the sizes offered for the category. Unknown categories have none.
func (c ProductCategory) SizeOptions() []string {
	var src []string
	switch c {
	case ProductCategoryFootwear:
		src = footwearSizes
	case ProductCategoryMen, ProductCategoryWomen, ProductCategoryKids:
		src = apparelSizes
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// ParseProductCategory converts raw input into a ProductCategory, ignoring case.
func ParseProductCategory(value string) (ProductCategory, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validProductCategories {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

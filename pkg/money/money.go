// Package money holds the decimal helpers shared by catalog records.
package money

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Discounted returns price × (1 − percent/100) rounded to cents.
func Discounted(price, percent decimal.Decimal) decimal.Decimal {
	factor := hundred.Sub(percent).Div(hundred)
	return Round2(price.Mul(factor))
}

// ValidPercent reports whether d lies in [0, 100].
func ValidPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && !d.GreaterThan(hundred)
}

// Number renders d as a bare JSON number, the form the catalog API reads.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

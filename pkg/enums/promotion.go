package enums

import (
	"fmt"
	"strings"
)

// PromoType classifies how a promotion pays out.
type PromoType string

const (
	PromoTypeCashback PromoType = "Cashback"
	PromoTypeDiscount PromoType = "Discount"
)

var validPromoTypes = []PromoType{
	PromoTypeCashback,
	PromoTypeDiscount,
}

// PromoTypes lists the supported promotion types.
func PromoTypes() []PromoType {
	out := make([]PromoType, len(validPromoTypes))
	copy(out, validPromoTypes)
	return out
}

// String implements fmt.Stringer.
func (p PromoType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromoType.
func (p PromoType) IsValid() bool {
	for _, candidate := range validPromoTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromoType converts raw input into a PromoType, ignoring case.
func ParsePromoType(value string) (PromoType, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validPromoTypes {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promo type %q", value)
}

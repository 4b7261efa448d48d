// Package promotions defines the promotion record, its table schema and entry form.
package promotions

import (
	"encoding/json"
	"strings"

	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	"github.com/angelmondragon/catalog-admin/pkg/money"
	"github.com/angelmondragon/catalog-admin/pkg/validation"
	"github.com/shopspring/decimal"
)

const (
	Resource  = "promotions"
	SheetName = "Promotions"
)

type Promotion struct {
	PromoCode   string          `json:"promoCode"`
	PromoType   enums.PromoType `json:"promoType"`
	Description string          `json:"description"`
	PromoAmount decimal.Decimal `json:"promoAmount"`
}

// MarshalJSON writes promoAmount as a JSON number.
func (p Promotion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PromoCode   string          `json:"promoCode"`
		PromoType   enums.PromoType `json:"promoType"`
		Description string          `json:"description"`
		PromoAmount json.Number     `json:"promoAmount"`
	}{p.PromoCode, p.PromoType, p.Description, money.Number(p.PromoAmount)})
}

// Schema is the promotion table. The promo code cannot change once created.
var Schema = records.Schema[Promotion]{
	Resource:  Resource,
	SheetName: SheetName,
	ID:        func(p Promotion) string { return p.PromoCode },
	Fields: []records.Field[Promotion]{
		{Name: "promoCode", Kind: records.KindText, Text: func(p Promotion) string { return p.PromoCode }},
		{Name: "promoType", Kind: records.KindText, Text: func(p Promotion) string { return p.PromoType.String() }},
		{Name: "description", Kind: records.KindText, Text: func(p Promotion) string { return p.Description }},
		{Name: "promoAmount", Kind: records.KindNumber, Number: func(p Promotion) decimal.Decimal { return p.PromoAmount }},
	},
	Search:      []string{"promoCode", "description", "promoAmount"},
	FilterField: "promoType",
	ImmutableID: true,
}

// Form is the promotion entry form payload.
type Form struct {
	PromoCode   string           `json:"promoCode" validate:"required"`
	PromoType   string           `json:"promoType" validate:"required"`
	Description string           `json:"description" validate:"required"`
	PromoAmount *decimal.Decimal `json:"promoAmount" validate:"required"`
}

func FormFrom(p Promotion) Form {
	amount := p.PromoAmount
	return Form{
		PromoCode:   p.PromoCode,
		PromoType:   p.PromoType.String(),
		Description: p.Description,
		PromoAmount: &amount,
	}
}

// Record validates the form and builds the promotion.
func (f Form) Record() (Promotion, error) {
	f.PromoCode = strings.TrimSpace(f.PromoCode)
	f.Description = strings.TrimSpace(f.Description)
	f.PromoType = strings.TrimSpace(f.PromoType)
	if err := validation.Struct(f); err != nil {
		return Promotion{}, err
	}
	promoType, err := enums.ParsePromoType(f.PromoType)
	if err != nil {
		return Promotion{}, validation.Field("promoType", "must be one of Cashback Discount")
	}
	if f.PromoAmount.IsNegative() {
		return Promotion{}, validation.Field("promoAmount", "must be at least 0")
	}
	return Promotion{
		PromoCode:   f.PromoCode,
		PromoType:   promoType,
		Description: f.Description,
		PromoAmount: *f.PromoAmount,
	}, nil
}

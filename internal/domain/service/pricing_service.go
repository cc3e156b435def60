package service

import (
	"github.com/shopspring/decimal"

	"luxuryline/internal/domain/entity"
)

// Fixed storefront pricing rules.
var (
	FreeShippingThreshold = decimal.NewFromInt(200)
	FlatShippingRate      = decimal.NewFromInt(15)
	TaxRate               = decimal.RequireFromString("0.08")
)

// CalculatePricing derives shipping, tax and total from a cart subtotal.
// Shipping is free only when the subtotal is strictly above the threshold.
// Nothing is rounded here; callers round for display.
func CalculatePricing(subtotal decimal.Decimal) entity.PriceSummary {
	shipping := FlatShippingRate
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return entity.PriceSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

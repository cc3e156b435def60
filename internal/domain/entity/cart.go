package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const defaultVariant = "default"

// LineItem is one cart entry. Key is the merge identity: adding the same
// product with the same size and color bumps Quantity instead of appending.
type LineItem struct {
	Key           string  `json:"cartId"`
	Product       Product `json:"product"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
	SelectedColor string  `json:"selectedColor,omitempty"`
	Quantity      int     `json:"quantity"`
}

// LineItemKey renders the composite key, e.g. "1-US 9-Black" or "6-default-Gold".
func LineItemKey(productID int, size, color string) string {
	if size == "" {
		size = defaultVariant
	}
	if color == "" {
		color = defaultVariant
	}
	return fmt.Sprintf("%d-%s-%s", productID, size, color)
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

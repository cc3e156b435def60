package entity

import (
	"github.com/shopspring/decimal"
)

const (
	CategorySneakers = "sneakers"
	CategoryCrockery = "crockery"
)

// Product is a catalog record. Records are fixed once the catalog is loaded;
// carts and wishlists keep copies of them as snapshots.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Description   string           `json:"description"`
	Images        []string         `json:"images"`
	Sizes         []string         `json:"sizes,omitempty"`
	Colors        []string         `json:"colors,omitempty"`
	Materials     []string         `json:"materials,omitempty"`
	SetSize       string           `json:"setSize,omitempty"`
	Featured      bool             `json:"featured"`
	OnSale        bool             `json:"onSale"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Clone returns a deep copy so snapshots never share slices with the catalog.
func (p Product) Clone() Product {
	c := p
	c.Images = append([]string(nil), p.Images...)
	c.Sizes = cloneStrings(p.Sizes)
	c.Colors = cloneStrings(p.Colors)
	c.Materials = cloneStrings(p.Materials)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		c.OriginalPrice = &op
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func KnownCategory(category string) bool {
	return category == CategorySneakers || category == CategoryCrockery
}

package entity

import (
	"github.com/shopspring/decimal"
)

const CategoryAll = "all"

type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByRating    SortKey = "rating"
	SortByNewest    SortKey = "newest"
)

// ParseSortKey maps unknown or empty keys to SortByName.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByPriceLow, SortByPriceHigh, SortByRating, SortByNewest:
		return SortKey(s)
	default:
		return SortByName
	}
}

var (
	PriceFloor   = decimal.Zero
	PriceCeiling = decimal.NewFromInt(500)
)

type FilterCriteria struct {
	Category  string          `json:"category"`
	MinPrice  decimal.Decimal `json:"minPrice"`
	MaxPrice  decimal.Decimal `json:"maxPrice"`
	Colors    []string        `json:"colors"`
	Sizes     []string        `json:"sizes"`
	Materials []string        `json:"materials"`
	OnSale    bool            `json:"onSale"`
	Featured  bool            `json:"featured"`
	Query     string          `json:"query"`
}

// DefaultCriteria is the unfiltered view: every category and the full price range.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category: CategoryAll,
		MinPrice: PriceFloor,
		MaxPrice: PriceCeiling,
	}
}

// FilterOptions lists the attribute values offered by the filter UI.
type FilterOptions struct {
	Colors    []string        `json:"colors"`
	Sizes     []string        `json:"sizes"`
	Materials []string        `json:"materials"`
	MinPrice  decimal.Decimal `json:"minPrice"`
	MaxPrice  decimal.Decimal `json:"maxPrice"`
}

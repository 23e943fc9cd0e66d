package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/catalogetl/catalogetl/internal/model"
)

// priceBands are checked in order; each upper bound is inclusive.
var priceBands = []struct {
	upper decimal.Decimal
	label model.PriceRange
}{
	{decimal.RequireFromString("10.00"), model.PriceRangeLow},
	{decimal.RequireFromString("100.00"), model.PriceRangeMedium},
	{decimal.RequireFromString("500.00"), model.PriceRangeHigh},
}

// ClassifyPrice maps a final rounded price to its tier.
func ClassifyPrice(price decimal.Decimal) model.PriceRange {
	for _, b := range priceBands {
		if price.LessThanOrEqual(b.upper) {
			return b.label
		}
	}
	return model.PriceRangePremium
}

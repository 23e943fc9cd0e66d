package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/catalogetl/catalogetl/internal/model"
)

// PriceScale is the number of fractional digits every output price carries.
const PriceScale = 2

var electronicsDiscount = decimal.RequireFromString("0.90")

// PremiumThreshold is the price Electronics must exceed, after discount and
// rounding, to be relabeled Premium Electronics.
var PremiumThreshold = decimal.RequireFromString("500.00")

// RoundPrice rounds to PriceScale places, halves away from zero (12.345 -> 12.35).
func RoundPrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(PriceScale)
}

// ApplyPricing returns rec with the pricing rules applied in order:
//  1. Electronics (by original category) are discounted 10%.
//  2. The price is rounded to two places.
//  3. Electronics whose rounded price exceeds 500.00 become Premium Electronics.
func ApplyPricing(rec model.ProductRecord) model.ProductRecord {
	electronics := rec.OriginalCategory == model.CategoryElectronics

	price := rec.Price
	if electronics {
		price = price.Mul(electronicsDiscount)
	}
	rec.Price = RoundPrice(price)

	if electronics && rec.Price.GreaterThan(PremiumThreshold) {
		rec.Category = model.CategoryPremiumElectronics
	}
	return rec
}

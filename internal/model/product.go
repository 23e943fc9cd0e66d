package model

import "github.com/shopspring/decimal"

// PriceRange is the tier label derived from a final rounded price.
type PriceRange string

const (
	PriceRangeLow     PriceRange = "Low"
	PriceRangeMedium  PriceRange = "Medium"
	PriceRangeHigh    PriceRange = "High"
	PriceRangePremium PriceRange = "Premium"
)

// Category names the pricing rules care about.
const (
	CategoryElectronics        = "Electronics"
	CategoryPremiumElectronics = "Premium Electronics"
)

// ProductRecord is one valid catalog row. It lives for a single line.
type ProductRecord struct {
	ProductID int
	Name      string          // upper-cased on ingestion
	Price     decimal.Decimal // exact; rounded to 2 places before output
	Category  string          // may be relabeled by pricing rules

	// OriginalCategory is the category as read from input. Rules test this
	// field, never Category.
	OriginalCategory string

	PriceRange PriceRange // set last, by classification
}

// RunSummary counts rows across one run.
type RunSummary struct {
	RowsRead    int
	RowsWritten int
	RowsSkipped int
}

// Balanced reports whether every row read was either written or skipped.
func (s RunSummary) Balanced() bool {
	return s.RowsRead == s.RowsWritten+s.RowsSkipped
}

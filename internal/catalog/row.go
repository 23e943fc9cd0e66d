package catalog

import (
	"strconv"
	"strings"

	"github.com/catalogetl/catalogetl/internal/model"
)

// Header is the fixed header line of a transformed catalog.
const Header = "ProductID,Name,Price,Category,PriceRange"

const (
	outNumFields  = 5
	outColID      = 0
	outColName    = 1
	outColPrice   = 2
	outColCat     = 3
	outColRange   = 4
	formatCatalog = "catalog"
)

// Pipeline runs parse, pricing and classification over one line.
type Pipeline struct{}

// Format returns the transform name.
func (p *Pipeline) Format() string { return formatCatalog }

// Header returns the fixed output header. The input header line is discarded.
func (p *Pipeline) Header() string { return Header }

// Process transforms one non-blank line. A failure at any stage yields a
// rejected result and no output line.
func (p *Pipeline) Process(line string) model.RowResult {
	rec, err := TransformRow(line)
	if err != nil {
		return model.Rejected(err)
	}
	return model.Transformed(MarshalRecord(rec))
}

// TransformRow parses line and applies pricing and classification.
func TransformRow(line string) (model.ProductRecord, error) {
	rec, err := ParseRow(line)
	if err != nil {
		return model.ProductRecord{}, err
	}
	rec = ApplyPricing(rec)
	rec.PriceRange = ClassifyPrice(rec.Price)
	return rec, nil
}

// MarshalRecord renders a transformed record as an output line.
func MarshalRecord(rec model.ProductRecord) string {
	row := make([]string, outNumFields)
	row[outColID] = strconv.Itoa(rec.ProductID)
	row[outColName] = rec.Name
	row[outColPrice] = rec.Price.StringFixed(PriceScale)
	row[outColCat] = rec.Category
	row[outColRange] = string(rec.PriceRange)
	return strings.Join(row, fieldSep)
}

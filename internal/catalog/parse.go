package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/catalogetl/catalogetl/internal/model"
)

const (
	numFields     = 4
	fieldSep      = ","
	colProductID  = 0
	colName       = 1
	colPrice      = 2
	colCategory   = 3
	productIDBits = 32

	// maxPriceExponent bounds the decimal exponent of an input price. Rounding
	// rescales by 10^exponent, so unbounded exponents never finish.
	maxPriceExponent = 100
)

// ErrRowMalformed matches every row-level rejection.
var ErrRowMalformed = errors.New("malformed row")

// RowError describes why a single row was rejected.
type RowError struct {
	Field  string // empty for structural errors
	Value  string
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrRowMalformed, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %q: %s: %v", ErrRowMalformed, e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s %q: %s", ErrRowMalformed, e.Field, e.Value, e.Reason)
}

// Unwrap exposes ErrRowMalformed and the underlying parse error, if any.
func (e *RowError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRowMalformed}
	}
	return []error{ErrRowMalformed, e.Err}
}

// ParseRow converts a non-blank catalog line into a ProductRecord.
// The line must have exactly four comma-separated fields.
func ParseRow(line string) (model.ProductRecord, error) {
	fields := splitFields(line)
	if len(fields) != numFields {
		return model.ProductRecord{}, &RowError{
			Reason: fmt.Sprintf("expected %d fields, got %d", numFields, len(fields)),
		}
	}

	rawID := strings.TrimSpace(fields[colProductID])
	id, err := strconv.ParseInt(rawID, 10, productIDBits)
	if err != nil {
		return model.ProductRecord{}, &RowError{Field: "product_id", Value: rawID, Reason: "not an integer", Err: err}
	}

	rawPrice := strings.TrimSpace(fields[colPrice])
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return model.ProductRecord{}, &RowError{Field: "price", Value: rawPrice, Reason: "not a decimal number", Err: err}
	}
	if exp := price.Exponent(); exp > maxPriceExponent || exp < -maxPriceExponent {
		return model.ProductRecord{}, &RowError{Field: "price", Value: rawPrice, Reason: "exponent out of range"}
	}

	category := strings.TrimSpace(fields[colCategory])
	return model.ProductRecord{
		ProductID:        int(id),
		Name:             strings.ToUpper(strings.TrimSpace(fields[colName])),
		Price:            price,
		Category:         category,
		OriginalCategory: category,
	}, nil
}

// splitFields splits on commas and drops trailing empty fields, so
// "1,Pen,2.00," counts as three fields.
func splitFields(line string) []string {
	fields := strings.Split(line, fieldSep)
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

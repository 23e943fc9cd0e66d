package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/catalogetl/catalogetl/internal/catalog"
	"github.com/catalogetl/catalogetl/internal/lineio"
	"github.com/catalogetl/catalogetl/internal/model"
)

// Rule names an invariant of a transformed catalog.
type Rule string

const (
	RuleHeader          Rule = "header"
	RuleFieldCount      Rule = "field-count"
	RuleProductID       Rule = "product-id"
	RuleNameCase        Rule = "name-case"
	RulePriceFormat     Rule = "price-format"
	RulePriceRange      Rule = "price-range"
	RulePremiumCategory Rule = "premium-category"
)

const (
	numFields = 5
	colID     = 0
	colName   = 1
	colPrice  = 2
	colCat    = 3
	colRange  = 4
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Rule        Rule
	Line        int // 1-based
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("line %d [%s]: %s", e.Line, e.Rule, e.Description)
}

// Report is the result of checking a whole file.
type Report struct {
	Rows   int
	Errors []ValidationError
}

// OK reports whether no invariant was violated.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// File checks the transformed catalog at path.
func File(path string) (Report, error) {
	r, err := lineio.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer r.Close()

	var lines []string
	for {
		line, ok, err := r.Next()
		if err != nil {
			return Report{}, err
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return Lines(lines), nil
}

// Lines checks a transformed catalog held in memory, header first.
func Lines(lines []string) Report {
	var rep Report

	// Header: exactly the fixed output header.
	if len(lines) == 0 {
		rep.Errors = append(rep.Errors, ValidationError{Rule: RuleHeader, Line: 1, Description: "missing header"})
		return rep
	}
	if lines[0] != catalog.Header {
		rep.Errors = append(rep.Errors, ValidationError{
			Rule:        RuleHeader,
			Line:        1,
			Description: fmt.Sprintf("got %q, want %q", lines[0], catalog.Header),
		})
	}

	for i, line := range lines[1:] {
		rep.Rows++
		rep.Errors = append(rep.Errors, checkRow(line, i+2)...)
	}
	return rep
}

func checkRow(line string, lineNo int) []ValidationError {
	var errs []ValidationError
	add := func(rule Rule, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, Line: lineNo, Description: fmt.Sprintf(format, args...)})
	}

	fields := strings.Split(line, ",")
	if len(fields) != numFields {
		add(RuleFieldCount, "expected %d fields, got %d", numFields, len(fields))
		return errs
	}

	if _, err := strconv.ParseInt(fields[colID], 10, 32); err != nil {
		add(RuleProductID, "product id %q is not an integer", fields[colID])
	}

	if name := fields[colName]; name != strings.ToUpper(name) {
		add(RuleNameCase, "name %q is not upper-case", name)
	}

	price, err := decimal.NewFromString(fields[colPrice])
	if err != nil {
		add(RulePriceFormat, "price %q is not a decimal number", fields[colPrice])
		return errs
	}
	if price.StringFixed(catalog.PriceScale) != fields[colPrice] {
		add(RulePriceFormat, "price %q is not rendered with %d decimal places", fields[colPrice], catalog.PriceScale)
	}

	if want := catalog.ClassifyPrice(price); string(want) != fields[colRange] {
		add(RulePriceRange, "price %s is in range %s, got %q", fields[colPrice], want, fields[colRange])
	}

	// Electronics above the threshold must have been relabeled. The reverse
	// cannot be checked: an input category may already read Premium Electronics.
	if category := fields[colCat]; category == model.CategoryElectronics && price.GreaterThan(catalog.PremiumThreshold) {
		add(RulePremiumCategory, "%s at %s should be %s", category, fields[colPrice], model.CategoryPremiumElectronics)
	}

	return errs
}

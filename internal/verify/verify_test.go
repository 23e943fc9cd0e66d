package verify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogetl/catalogetl/internal/catalog"
)

func rules(rep Report) []Rule {
	var got []Rule
	for _, e := range rep.Errors {
		got = append(got, e.Rule)
	}
	return got
}

func TestLines_Valid(t *testing.T) {
	rep := Lines([]string{
		catalog.Header,
		"1,LAPTOP,449.99,Electronics,High",
		"2,TV,540.00,Premium Electronics,Premium",
		"3,NOVEL,10.00,Books,Low",
		"4,CHAIR,900.00,Furniture,Premium",
	})
	assert.True(t, rep.OK(), "unexpected errors: %v", rep.Errors)
	assert.Equal(t, 4, rep.Rows)
}

func TestLines_HeaderOnly(t *testing.T) {
	rep := Lines([]string{catalog.Header})
	assert.True(t, rep.OK())
	assert.Zero(t, rep.Rows)
}

func TestLines_MissingHeader(t *testing.T) {
	rep := Lines(nil)
	assert.Equal(t, []Rule{RuleHeader}, rules(rep))
}

func TestLines_WrongHeader(t *testing.T) {
	rep := Lines([]string{"ProductID,Name,Price,Category"})
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, RuleHeader, rep.Errors[0].Rule)
	assert.Equal(t, 1, rep.Errors[0].Line)
}

func TestLines_RowRules(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want []Rule
	}{
		{"field count", "1,PEN,1.00,Office", []Rule{RuleFieldCount}},
		{"product id", "x,PEN,1.00,Office,Low", []Rule{RuleProductID}},
		{"name case", "1,Pen,1.00,Office,Low", []Rule{RuleNameCase}},
		{"one decimal place", "1,PEN,1.5,Office,Low", []Rule{RulePriceFormat}},
		{"three decimal places", "1,PEN,1.555,Office,Low", []Rule{RulePriceFormat}},
		{"not a number", "1,PEN,cheap,Office,Low", []Rule{RulePriceFormat}},
		{"wrong range", "1,PEN,10.01,Office,Low", []Rule{RulePriceRange}},
		{"premium category from input", "1,GIFT,100.00,Premium Electronics,Medium", nil},
		{"electronics at threshold", "1,TV,500.00,Electronics,High", nil},
		{"electronics over threshold", "1,TV,500.01,Electronics,Premium", []Rule{RulePremiumCategory}},
		{"several at once", "1,pen,1.5,Office,High", []Rule{RuleNameCase, RulePriceFormat, RulePriceRange}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Lines([]string{catalog.Header, tt.row})
			assert.Equal(t, tt.want, rules(rep))
			for _, e := range rep.Errors {
				assert.Equal(t, 2, e.Line)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	e := ValidationError{Rule: RulePriceRange, Line: 7, Description: "price 10.01 is in range Medium, got \"Low\""}
	assert.Equal(t, `line 7 [price-range]: price 10.01 is in range Medium, got "Low"`, e.Error())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	content := strings.Join([]string{catalog.Header, "1,PEN,1.00,Office,Low", "2,CUP,2,Kitchen,Low"}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rep, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Rows)
	assert.Equal(t, []Rule{RulePriceFormat}, rules(rep))
	assert.Equal(t, 3, rep.Errors[0].Line)
}

func TestFile_NotFound(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_RunnerOutputVerifies(t *testing.T) {
	// Every line the pipeline produces passes verification.
	p := &catalog.Pipeline{}
	lines := []string{catalog.Header}
	for _, in := range []string{
		"1,Laptop,999.99,Electronics",
		"2,Headphones,499.99,Electronics",
		"3,Edge,555.56,Electronics",
		"4,Edge2,555.57,Electronics",
		"5,Novel,10.00,Books",
		"6,Cable,12.345,Accessories",
		"7,Refund,-3.333,Misc",
		"8,Gift,100.00,Premium Electronics",
	} {
		res := p.Process(in)
		require.True(t, res.OK(), "Process(%q): %v", in, res.Err)
		lines = append(lines, res.Line)
	}
	rep := Lines(lines)
	assert.True(t, rep.OK(), "unexpected errors: %v", rep.Errors)
}

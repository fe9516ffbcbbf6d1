package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percentage is a share of a month's expenses. A month without expenses has
// no defined shares; Defined is false and Value is zero.
type Percentage struct {
	Value   decimal.Decimal
	Defined bool
}

// Undefined is the marker for shares of a zero-expense month.
var Undefined = Percentage{}

func percentOf(part, whole decimal.Decimal) Percentage {
	if whole.IsZero() {
		return Undefined
	}
	return Percentage{Value: part.Div(whole).Mul(hundred), Defined: true}
}

// String formats the share with two decimals, or "n/a" when undefined.
func (p Percentage) String() string {
	if !p.Defined {
		return "n/a"
	}
	return p.Value.StringFixed(2)
}

// Cmp compares two percentages. Undefined sorts below every defined value.
func (p Percentage) Cmp(o Percentage) int {
	switch {
	case !p.Defined && !o.Defined:
		return 0
	case !p.Defined:
		return -1
	case !o.Defined:
		return 1
	}
	return p.Value.Cmp(o.Value)
}

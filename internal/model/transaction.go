package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryOther is the fallback category for descriptions no rule matches.
const CategoryOther = "other"

// RawRow is one untyped record from a five-column bank export:
// date, amount, symbol, symbol, description.
type RawRow struct {
	Line        int // 1-based source line, 0 if unknown
	DateText    string
	AmountText  string
	Symbol1     string
	Symbol2     string
	Description string
}

// Transaction is a cleaned bank export row.
type Transaction struct {
	Date        time.Time       // midnight UTC, no time-of-day
	Amount      decimal.Decimal // negative = expense, positive = income
	Description string
	Category    string // empty until classified
}

// IsExpense reports whether the transaction is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Month returns the calendar month the transaction falls in.
func (t Transaction) Month() Month {
	return MonthOf(t.Date)
}

// WithCategory returns a copy of t carrying category.
func (t Transaction) WithCategory(category string) Transaction {
	t.Category = category
	return t
}

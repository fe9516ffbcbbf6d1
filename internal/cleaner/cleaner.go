// Package cleaner converts raw bank export rows into typed transactions.
package cleaner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

var (
	// ErrMissingAmount means the amount field held no digits.
	ErrMissingAmount = errors.New("missing amount")
	// ErrBadAmount means the amount field could not be parsed as a number.
	ErrBadAmount = errors.New("invalid amount")
	// ErrBadDate means the date field could not be parsed.
	ErrBadDate = errors.New("invalid date")
)

// Field names used in Rejection.
const (
	FieldDate   = "date"
	FieldAmount = "amount"
)

// Rejection records a row dropped during cleaning.
type Rejection struct {
	Row   model.RawRow
	Field string
	Value string
	Err   error
}

func (r Rejection) Error() string {
	if r.Row.Line > 0 {
		return fmt.Sprintf("line %d: %s %q: %v", r.Row.Line, r.Field, r.Value, r.Err)
	}
	return fmt.Sprintf("%s %q: %v", r.Field, r.Value, r.Err)
}

func (r Rejection) Unwrap() error { return r.Err }

// Result is the outcome of cleaning a batch.
type Result struct {
	Transactions []model.Transaction
	Rejected     []Rejection
}

// Clean parses every row, keeping those with a valid date and amount.
// Input order is preserved. Cleaning never fails as a whole.
func Clean(rows []model.RawRow) Result {
	var res Result
	for _, row := range rows {
		txn, rej, ok := cleanRow(row)
		if !ok {
			res.Rejected = append(res.Rejected, rej)
			continue
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return res
}

func cleanRow(row model.RawRow) (model.Transaction, Rejection, bool) {
	amount, err := ParseAmount(row.AmountText)
	if err != nil {
		return model.Transaction{}, Rejection{Row: row, Field: FieldAmount, Value: row.AmountText, Err: err}, false
	}

	date, err := ParseDate(row.DateText)
	if err != nil {
		return model.Transaction{}, Rejection{Row: row, Field: FieldDate, Value: row.DateText, Err: err}, false
	}

	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Description: row.Description,
	}, Rejection{}, true
}

// ParseAmount strips everything except digits, '.' and '-' and parses the rest.
// "-$45.67" -> -45.67. Text with no digits left is ErrMissingAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return decimal.Decimal{}, ErrMissingAmount
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrBadAmount, cleaned)
	}
	return amount, nil
}

// ParseDate parses a date in any common layout (MM/DD/YYYY, YYYY-MM-DD, ...)
// and drops the time of day. Ambiguous numeric dates are read month-first.
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrBadDate)
	}

	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadDate, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

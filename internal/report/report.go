// Package report groups classified transactions into monthly buckets with
// per-category expense breakdowns.
package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// CategoryTotal is one line of a month's category breakdown.
type CategoryTotal struct {
	Name       string
	Subtotal   decimal.Decimal // sum of negative amounts
	Count      int             // number of expenses
	Percentage Percentage
}

// Bucket holds one calendar month of transactions and its aggregates.
type Bucket struct {
	Month        model.Month
	Transactions []model.Transaction
	TotalExpense decimal.Decimal // sum of negative amounts
	TotalIncome  decimal.Decimal
	Categories   []CategoryTotal
}

// HasExpenses reports whether the month has any outflow.
func (b Bucket) HasExpenses() bool {
	return !b.TotalExpense.IsZero()
}

// Category returns the breakdown line for name.
func (b Bucket) Category(name string) (CategoryTotal, bool) {
	for _, c := range b.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryTotal{}, false
}

// Aggregate groups transactions by month, in chronological order. Only months
// present in the input produce buckets. Transactions keep their input order
// within a bucket.
//
// The breakdown lists every category with at least one expense, ordered by
// percentage descending then name. A month with no expenses lists every
// category it contains with an Undefined percentage.
func Aggregate(txns []model.Transaction) []Bucket {
	byMonth := make(map[model.Month]*Bucket)
	var months []model.Month
	for _, txn := range txns {
		m := txn.Month()
		b, ok := byMonth[m]
		if !ok {
			b = &Bucket{Month: m}
			byMonth[m] = b
			months = append(months, m)
		}
		b.Transactions = append(b.Transactions, txn)
	}

	slices.SortFunc(months, func(a, b model.Month) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})

	buckets := make([]Bucket, len(months))
	for i, m := range months {
		b := byMonth[m]
		summarize(b)
		buckets[i] = *b
	}
	return buckets
}

func summarize(b *Bucket) {
	type acc struct {
		subtotal decimal.Decimal
		count    int
	}
	totals := make(map[string]*acc)
	var names []string

	for _, txn := range b.Transactions {
		a, ok := totals[txn.Category]
		if !ok {
			a = &acc{}
			totals[txn.Category] = a
			names = append(names, txn.Category)
		}
		if txn.IsExpense() {
			b.TotalExpense = b.TotalExpense.Add(txn.Amount)
			a.subtotal = a.subtotal.Add(txn.Amount)
			a.count++
		} else {
			b.TotalIncome = b.TotalIncome.Add(txn.Amount)
		}
	}

	for _, name := range names {
		a := totals[name]
		if b.HasExpenses() && a.count == 0 {
			continue
		}
		b.Categories = append(b.Categories, CategoryTotal{
			Name:       name,
			Subtotal:   a.subtotal,
			Count:      a.count,
			Percentage: percentOf(a.subtotal, b.TotalExpense),
		})
	}

	slices.SortFunc(b.Categories, func(x, y CategoryTotal) int {
		if c := y.Percentage.Cmp(x.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
}

// Diagnostics describes the batch a report was built from.
type Diagnostics struct {
	Source   string // file name, empty for in-memory batches
	Account  string // rule set name
	Rows     int    // raw rows read
	Rejected int    // rows dropped by the cleaner
}

// Accepted returns the number of rows that survived cleaning.
func (d Diagnostics) Accepted() int {
	return d.Rows - d.Rejected
}

// Report is the read-only result of one run.
type Report struct {
	Diagnostics Diagnostics
	Buckets     []Bucket
}

// Build aggregates classified transactions and orders each month's listing
// by (date, category). Transactions with equal keys keep their input order.
func Build(txns []model.Transaction, diag Diagnostics) *Report {
	buckets := Aggregate(txns)
	for i := range buckets {
		slices.SortStableFunc(buckets[i].Transactions, func(a, b model.Transaction) int {
			if c := a.Date.Compare(b.Date); c != 0 {
				return c
			}
			return cmp.Compare(a.Category, b.Category)
		})
	}
	return &Report{Diagnostics: diag, Buckets: buckets}
}

// Empty reports whether the report has no months.
func (r *Report) Empty() bool {
	return len(r.Buckets) == 0
}

// Month returns the bucket for m.
func (r *Report) Month(m model.Month) (Bucket, bool) {
	for _, b := range r.Buckets {
		if b.Month == m {
			return b, true
		}
	}
	return Bucket{}, false
}

// Only returns a copy of the report restricted to month m.
func (r *Report) Only(m model.Month) *Report {
	out := &Report{Diagnostics: r.Diagnostics}
	if b, ok := r.Month(m); ok {
		out.Buckets = []Bucket{b}
	}
	return out
}

// Transactions returns the number of transactions across all months.
func (r *Report) Transactions() int {
	n := 0
	for _, b := range r.Buckets {
		n += len(b.Transactions)
	}
	return n
}

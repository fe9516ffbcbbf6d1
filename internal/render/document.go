package render

import (
	"github.com/spendtrack-dev/spendtrack/internal/report"
)

const dateFormat = "2006-01-02"

// Document is the serialized form of a report.
type Document struct {
	Source   string     `json:"source,omitempty" yaml:"source,omitempty"`
	Account  string     `json:"account,omitempty" yaml:"account,omitempty"`
	Rows     int        `json:"rows" yaml:"rows"`
	Accepted int        `json:"accepted" yaml:"accepted"`
	Rejected int        `json:"rejected" yaml:"rejected"`
	Months   []MonthDoc `json:"months" yaml:"months"`
}

// MonthDoc is one month of a Document.
type MonthDoc struct {
	Month        string           `json:"month" yaml:"month"`
	TotalExpense string           `json:"total_expense" yaml:"total_expense"`
	TotalIncome  string           `json:"total_income" yaml:"total_income"`
	Categories   []CategoryDoc    `json:"categories" yaml:"categories"`
	Transactions []TransactionDoc `json:"transactions" yaml:"transactions"`
}

// CategoryDoc is one category line. Percentage is null for months
// without expenses.
type CategoryDoc struct {
	Name       string  `json:"name" yaml:"name"`
	Subtotal   string  `json:"subtotal" yaml:"subtotal"`
	Count      int     `json:"count" yaml:"count"`
	Percentage *string `json:"percentage" yaml:"percentage"`
}

// TransactionDoc is one listed transaction.
type TransactionDoc struct {
	Date        string `json:"date" yaml:"date"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// NewDocument converts a report to its serialized form. Amounts are fixed
// to two decimals.
func NewDocument(r *report.Report) Document {
	doc := Document{
		Source:   r.Diagnostics.Source,
		Account:  r.Diagnostics.Account,
		Rows:     r.Diagnostics.Rows,
		Accepted: r.Diagnostics.Accepted(),
		Rejected: r.Diagnostics.Rejected,
		Months:   make([]MonthDoc, 0, len(r.Buckets)),
	}

	for _, b := range r.Buckets {
		m := MonthDoc{
			Month:        b.Month.String(),
			TotalExpense: b.TotalExpense.StringFixed(2),
			TotalIncome:  b.TotalIncome.StringFixed(2),
			Categories:   make([]CategoryDoc, 0, len(b.Categories)),
			Transactions: make([]TransactionDoc, 0, len(b.Transactions)),
		}
		for _, c := range b.Categories {
			cd := CategoryDoc{Name: c.Name, Subtotal: c.Subtotal.StringFixed(2), Count: c.Count}
			if c.Percentage.Defined {
				pct := c.Percentage.String()
				cd.Percentage = &pct
			}
			m.Categories = append(m.Categories, cd)
		}
		for _, txn := range b.Transactions {
			m.Transactions = append(m.Transactions, TransactionDoc{
				Date:        txn.Date.Format(dateFormat),
				Amount:      txn.Amount.StringFixed(2),
				Description: txn.Description,
				Category:    txn.Category,
			})
		}
		doc.Months = append(doc.Months, m)
	}
	return doc
}

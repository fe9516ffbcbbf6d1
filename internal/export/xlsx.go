// Package export writes reports to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spendtrack-dev/spendtrack/internal/report"
)

// Sheet names used in exported workbooks.
const (
	SheetSummary      = "Summary"
	SheetTransactions = "Transactions"
)

var (
	summaryHeader     = []any{"Month", "Category", "Subtotal", "Percentage", "Month Total"}
	transactionHeader = []any{"Month", "Date", "Amount", "Description", "Category"}
)

// WriteXLSX writes the report as a workbook with a category summary sheet and
// a transaction listing sheet. Amounts are written as numbers; undefined
// percentages are left blank.
func WriteXLSX(w io.Writer, r *report.Report) error {
	f, err := NewWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the report workbook to path.
func SaveXLSX(path string, r *report.Report) error {
	f, err := NewWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// NewWorkbook builds the report workbook in memory. Callers must Close it.
func NewWorkbook(r *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// A new file starts with "Sheet1"; reuse it as the summary sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetTransactions); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating transactions sheet: %w", err)
	}

	if err := writeSummary(f, r); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTransactions(f, r); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, r *report.Report) error {
	if err := setRow(f, SheetSummary, 1, summaryHeader); err != nil {
		return err
	}
	row := 2
	for _, b := range r.Buckets {
		total := b.TotalExpense.Abs().InexactFloat64()
		for _, c := range b.Categories {
			var pct any
			if c.Percentage.Defined {
				pct = c.Percentage.Value.Round(2).InexactFloat64()
			}
			values := []any{b.Month.String(), c.Name, c.Subtotal.Abs().InexactFloat64(), pct, total}
			if err := setRow(f, SheetSummary, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeTransactions(f *excelize.File, r *report.Report) error {
	if err := setRow(f, SheetTransactions, 1, transactionHeader); err != nil {
		return err
	}
	row := 2
	for _, b := range r.Buckets {
		for _, txn := range b.Transactions {
			values := []any{
				b.Month.String(),
				txn.Date.Format("2006-01-02"),
				txn.Amount.InexactFloat64(),
				txn.Description,
				txn.Category,
			}
			if err := setRow(f, SheetTransactions, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

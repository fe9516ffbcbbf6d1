package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/report"
)

func sampleReport() *report.Report {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	return report.Build([]model.Transaction{
		{Date: day(5), Amount: decimal.RequireFromString("-100"), Description: "PUBLIX", Category: "food"},
		{Date: day(6), Amount: decimal.RequireFromString("-50"), Description: "EXXON", Category: "gas"},
		{Date: day(7), Amount: decimal.RequireFromString("200"), Description: "ZELLE FROM", Category: "income"},
		{Date: day(7).AddDate(0, 1, 0), Amount: decimal.RequireFromString("10"), Description: "INTEREST", Category: "income"},
	}, report.Diagnostics{Rows: 4})
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetTransactions}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"Month", "Category", "Subtotal", "Percentage", "Month Total"}, summary[0])
	assert.Equal(t, []string{"2025-01", "food", "100", "66.67", "150"}, summary[1])
	assert.Equal(t, []string{"2025-01", "gas", "50", "33.33", "150"}, summary[2])
	assert.Equal(t, "2025-02", summary[3][0])
	assert.Equal(t, "income", summary[3][1])
	assert.Equal(t, "", summary[3][3], "undefined percentage is blank")

	txns, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	require.Len(t, txns, 5)
	assert.Equal(t, []string{"2025-01", "2025-01-05", "-100", "PUBLIX", "food"}, txns[1])
	assert.Equal(t, "2025-02-07", txns[4][1])
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, SaveXLSX(path, sampleReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, report.Build(nil, report.Diagnostics{})))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

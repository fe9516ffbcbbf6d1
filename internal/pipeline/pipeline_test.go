package pipeline

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack-dev/spendtrack/internal/logger"
	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

func TestRunFile_Checking(t *testing.T) {
	res, err := RunFile(context.Background(), "../../testdata/checking.csv", rules.Default(rules.AccountChecking), Options{})
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, "checking.csv", rep.Diagnostics.Source)
	assert.Equal(t, "checking", rep.Diagnostics.Account)
	assert.Equal(t, 10, rep.Diagnostics.Rows)
	assert.Equal(t, 2, rep.Diagnostics.Rejected)
	assert.Len(t, res.Rejected, 2)
	assert.Equal(t, 8, rep.Transactions())

	require.Len(t, rep.Buckets, 3)
	jan := rep.Buckets[0]
	assert.Equal(t, "2025-01", jan.Month.String())
	assert.Equal(t, "-200.00", jan.TotalExpense.StringFixed(2))

	var names []string
	for _, c := range jan.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"transfers", "target", "payments", "reoccurring"}, names)
	assert.Equal(t, "50.00", jan.Categories[0].Percentage.String())

	// ZELLE FROM ties income and payments; income is declared first.
	for _, txn := range jan.Transactions {
		if txn.Description == "ZELLE FROM JOHN SMITH ON 01/10" {
			assert.Equal(t, "income", txn.Category)
		}
	}

	feb := rep.Buckets[1]
	assert.False(t, feb.HasExpenses())
	require.Len(t, feb.Categories, 1)
	assert.False(t, feb.Categories[0].Percentage.Defined)

	mar := rep.Buckets[2]
	require.Len(t, mar.Categories, 2)
	assert.Equal(t, "reoccurring", mar.Categories[0].Name)
	assert.Equal(t, "60.00", mar.Categories[0].Percentage.String())
	assert.Equal(t, model.CategoryOther, mar.Categories[1].Name)
}

func TestRunFile_Credit(t *testing.T) {
	res, err := RunFile(context.Background(), "../../testdata/credit.csv", rules.Default(rules.AccountCredit), Options{Source: "card"})
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, "card", rep.Diagnostics.Source)
	require.Len(t, rep.Buckets, 1)
	b := rep.Buckets[0]
	assert.Equal(t, "-116.00", b.TotalExpense.StringFixed(2))

	other, ok := b.Category("other")
	require.True(t, ok)
	assert.Equal(t, "-43.57", other.Subtotal.StringFixed(2))
	assert.Equal(t, 2, other.Count)

	ent, ok := b.Category("entertainment")
	require.True(t, ok)
	assert.Equal(t, "entertainment", b.Categories[0].Name)
	assert.Equal(t, "-60.00", ent.Subtotal.StringFixed(2))
}

func TestRunFile_PolicyOverride(t *testing.T) {
	rs := rules.Default(rules.AccountSavings)
	res, err := RunFile(context.Background(), "../../testdata/savings.csv", rs, Options{Policy: rules.FirstMatch})
	require.NoError(t, err)
	require.Len(t, res.Report.Buckets, 1)

	b := res.Report.Buckets[0]
	c, ok := b.Category("payments")
	require.True(t, ok)
	assert.Equal(t, "100.00", c.Percentage.String())
}

func TestRunFile_LoadFailure(t *testing.T) {
	_, err := RunFile(context.Background(), "../../testdata/bad_shape.csv", rules.Default(rules.AccountChecking), Options{})
	assert.Error(t, err)

	_, err = RunFile(context.Background(), "../../testdata/missing.csv", rules.Default(rules.AccountChecking), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_LogsRejections(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&buf))

	rows := []model.RawRow{
		{Line: 1, DateText: "01/02/2025", AmountText: "-1.00", Description: "X"},
		{Line: 2, DateText: "01/02/2025", AmountText: "N/A", Description: "Y"},
	}
	res, err := Run(ctx, rows, rules.Default(rules.AccountChecking), Options{Source: "mem"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Report.Diagnostics.Rejected)

	out := buf.String()
	assert.Contains(t, out, `"message":"row rejected"`)
	assert.Contains(t, out, `"line":2`)
	assert.Contains(t, out, `"field":"amount"`)
	assert.Contains(t, out, `"message":"report built"`)
}

func TestRun_Deterministic(t *testing.T) {
	rs := rules.Default(rules.AccountChecking)
	a, err := RunFile(context.Background(), "../../testdata/checking.csv", rs, Options{})
	require.NoError(t, err)
	b, err := RunFile(context.Background(), "../../testdata/checking.csv", rs, Options{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, a.Report, b.Report)
}

func TestRun_EmptyBatch(t *testing.T) {
	res, err := Run(context.Background(), nil, rules.Default(rules.AccountChecking), Options{})
	require.NoError(t, err)
	assert.True(t, res.Report.Empty())
}

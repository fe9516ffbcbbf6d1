package cleaner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

func row(date, amount, desc string) model.RawRow {
	return model.RawRow{DateText: date, AmountText: amount, Symbol1: "*", Description: desc}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-$45.67", "-45.67"},
		{"45.67", "45.67"},
		{"$1,234.50", "1234.5"},
		{" -12 ", "-12"},
		{"USD 3.00", "3"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "ParseAmount(%q)", tt.in)
		assert.Equal(t, tt.want, got.String(), "ParseAmount(%q)", tt.in)
	}
}

func TestParseAmount_Missing(t *testing.T) {
	for _, in := range []string{"", "N/A", "$", "   "} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrMissingAmount, "ParseAmount(%q)", in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"1.2.3", "-", "--5", "5-"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrBadAmount, "ParseAmount(%q)", in)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"01/15/2025", "1/15/2025", "2025-01-15", " 01/15/2025 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, "ParseDate(%q)", in)
		assert.True(t, want.Equal(got), "ParseDate(%q) = %s", in, got)
	}
}

func TestParseDate_MonthFirst(t *testing.T) {
	got, err := ParseDate("03/04/2025")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 4, got.Day())
}

func TestParseDate_DropsTimeOfDay(t *testing.T) {
	got, err := ParseDate("2025-02-03 17:45:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 3, got.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "13/45/2025"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrBadDate, "ParseDate(%q)", in)
	}
}

func TestClean(t *testing.T) {
	rows := []model.RawRow{
		row("01/03/2025", "-$45.67", "TACO BELL #123"),
		row("01/04/2025", "", "EMPTY AMOUNT"),
		row("01/05/2025", "N/A", "NA AMOUNT"),
		row("not-a-date", "-10.00", "BAD DATE"),
		row("01/06/2025", "200.00", "ZELLE FROM JOHN"),
	}

	res := Clean(rows)
	require.Len(t, res.Transactions, 2)
	require.Len(t, res.Rejected, 3)
	assert.Equal(t, len(rows)-len(res.Rejected), len(res.Transactions))

	first := res.Transactions[0]
	assert.Equal(t, "-45.67", first.Amount.StringFixed(2))
	assert.Equal(t, "TACO BELL #123", first.Description)
	assert.Empty(t, first.Category)
	assert.Equal(t, 3, first.Date.Day())

	assert.Equal(t, "ZELLE FROM JOHN", res.Transactions[1].Description)

	assert.Equal(t, FieldAmount, res.Rejected[0].Field)
	assert.ErrorIs(t, res.Rejected[0], ErrMissingAmount)
	assert.Equal(t, FieldAmount, res.Rejected[1].Field)
	assert.Equal(t, FieldDate, res.Rejected[2].Field)
	assert.ErrorIs(t, res.Rejected[2], ErrBadDate)
	assert.Equal(t, "BAD DATE", res.Rejected[2].Row.Description)
}

func TestClean_Empty(t *testing.T) {
	res := Clean(nil)
	assert.Empty(t, res.Transactions)
	assert.Empty(t, res.Rejected)
}

func TestRejection_Error(t *testing.T) {
	r := Rejection{Row: model.RawRow{Line: 7}, Field: FieldDate, Value: "x", Err: ErrBadDate}
	assert.Equal(t, `line 7: date "x": invalid date`, r.Error())

	r.Row.Line = 0
	assert.Equal(t, `date "x": invalid date`, r.Error())
}

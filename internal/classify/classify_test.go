package classify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

func TestClassify_FirstMatch(t *testing.T) {
	rs := rules.Default(rules.AccountChecking)
	assert.Equal(t, "income", Classify("ZELLE FROM JOHN", rs, rules.FirstMatch))
	assert.Equal(t, "payments", Classify("ZELLE TO JANE", rs, rules.FirstMatch))
	assert.Equal(t, "target", Classify("TARGET T-1234 TAMPA", rs, rules.FirstMatch))
}

func TestClassify_FirstMatchDeclarationOrder(t *testing.T) {
	rs := rules.MustNew("x", rules.FirstMatch, []rules.CategorySpec{
		{Name: "b", Patterns: []string{"coffee"}},
		{Name: "a", Patterns: []string{"coffee shop", "shop"}},
	})
	assert.Equal(t, "b", Classify("COFFEE SHOP", rs, rules.FirstMatch))
}

func TestClassify_BestScore(t *testing.T) {
	rs := rules.Default(rules.AccountChecking)
	assert.Equal(t, "payments", Classify("PURCHASE AUTH AMAZON", rs, rules.BestScore))
	assert.Equal(t, "income", Classify("ZELLE FROM JOHN", rs, rules.BestScore), "tie goes to earlier declared")
	assert.Equal(t, model.CategoryOther, Classify("CHECK 1042", rs, rules.BestScore))
}

func TestClassify_BestScoreHigherWins(t *testing.T) {
	rs := rules.MustNew("x", rules.BestScore, []rules.CategorySpec{
		{Name: "b", Patterns: []string{"coffee"}},
		{Name: "a", Patterns: []string{"coffee shop", "shop"}},
	})
	assert.Equal(t, "a", Classify("COFFEE SHOP", rs, rules.BestScore))
	assert.Equal(t, "b", Classify("coffee beans", rs, rules.BestScore))
	assert.Equal(t, model.CategoryOther, Classify("tea", rs, rules.BestScore))
}

func TestClassify_SubstringNotEquality(t *testing.T) {
	rs := rules.MustNew("x", rules.FirstMatch, []rules.CategorySpec{{Name: "food", Patterns: []string{"taco"}}})
	assert.Equal(t, "food", Classify("purchase TACO bell 0042", rs, rules.FirstMatch))
}

func TestClassify_NeverEmpty(t *testing.T) {
	sets := []*rules.RuleSet{
		rules.Default(rules.AccountChecking),
		rules.Default(rules.AccountSavings),
		rules.Default(rules.AccountCredit),
		rules.MustNew("empty", rules.BestScore, nil),
		nil,
	}
	descs := []string{"", "ZELLE FROM", "TACO BELL", "INTEREST PAYMENT", "random text", "EXXON 123"}

	for _, rs := range sets {
		for _, policy := range []rules.Policy{rules.FirstMatch, rules.BestScore} {
			for _, d := range descs {
				got := Classify(d, rs, policy)
				require.NotEmpty(t, got)
				if got != model.CategoryOther {
					assert.True(t, rs.Declares(got), "undeclared category %q", got)
				}
			}
		}
	}
}

func TestClassify_CreditDeclaresOther(t *testing.T) {
	rs := rules.Default(rules.AccountCredit)
	assert.Equal(t, "other", Classify("EXXON MOBIL 4471", rs, rs.Policy()))
	assert.Equal(t, "food", Classify("MCDONALDS F1234", rs, rs.Policy()))
	// TST* THE MELTING POT matches food before entertainment.
	assert.Equal(t, "food", Classify("TST* THE MELTING POT", rs, rs.Policy()))
	assert.Equal(t, "entertainment", Classify("THE MELTING POT TAMPA", rs, rs.Policy()))
}

func makeTxns(n int) []model.Transaction {
	descs := []string{"ZELLE FROM JOHN", "PURCHASE AUTH AMAZON", "MICROSOFT 365", "ONLINE TRANSFER", "CHECK", "TARGET"}
	txns := make([]model.Transaction, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range txns {
		txns[i] = model.Transaction{
			Date:        base.AddDate(0, 0, i%60),
			Amount:      decimal.NewFromInt(int64(-i)),
			Description: fmt.Sprintf("%s %d", descs[i%len(descs)], i),
		}
	}
	return txns
}

func TestAll_UsesRuleSetPolicy(t *testing.T) {
	rs := rules.MustNew("x", rules.FirstMatch, []rules.CategorySpec{
		{Name: "b", Patterns: []string{"coffee"}},
		{Name: "a", Patterns: []string{"coffee shop", "shop"}},
	})
	txns := []model.Transaction{{Description: "COFFEE SHOP"}}

	got, err := All(context.Background(), txns, rs, Options{})
	require.NoError(t, err)
	assert.Equal(t, "b", got[0].Category)

	got, err = All(context.Background(), txns, rs, Options{Policy: rules.BestScore})
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Category)
}

func TestAll_DoesNotMutateInput(t *testing.T) {
	txns := makeTxns(10)
	_, err := All(context.Background(), txns, rules.Default(rules.AccountChecking), Options{})
	require.NoError(t, err)
	for _, txn := range txns {
		assert.Empty(t, txn.Category)
	}
}

func TestAll_ParallelMatchesSerial(t *testing.T) {
	txns := makeTxns(5000)
	rs := rules.Default(rules.AccountChecking)

	serial, err := All(context.Background(), txns, rs, Options{})
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		parallel, err := All(context.Background(), txns, rs, Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, serial, parallel, "workers=%d", workers)
	}
}

func TestAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := All(ctx, makeTxns(5000), rules.Default(rules.AccountChecking), Options{Workers: 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAll_Empty(t *testing.T) {
	got, err := All(context.Background(), nil, rules.Default(rules.AccountChecking), Options{Workers: 8})
	require.NoError(t, err)
	assert.Empty(t, got)
}

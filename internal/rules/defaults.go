package rules

// Built-in account types.
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
	AccountCredit   = "credit"
)

// DefaultSpecs returns the built-in category definitions and policy for an
// account type. ok is false for unknown account types.
func DefaultSpecs(account string) (specs []CategorySpec, policy Policy, ok bool) {
	switch account {
	case AccountChecking:
		return checkingSpecs(), BestScore, true
	case AccountSavings:
		return savingsSpecs(), BestScore, true
	case AccountCredit:
		return creditSpecs(), FirstMatch, true
	}
	return nil, "", false
}

// Default returns the compiled built-in rule set for an account type, or nil.
func Default(account string) *RuleSet {
	specs, policy, ok := DefaultSpecs(account)
	if !ok {
		return nil
	}
	return MustNew(account, policy, specs)
}

// DefaultAccounts lists the built-in account types in routing order.
func DefaultAccounts() []string {
	return []string{AccountChecking, AccountCredit, AccountSavings}
}

func checkingSpecs() []CategorySpec {
	return []CategorySpec{
		{Name: "reoccurring", Patterns: []string{`reoccuring`, `microsoft`, `apple`}},
		{Name: "target", Patterns: []string{`target`}},
		{Name: "transfers", Patterns: []string{`transfer`}},
		{Name: "income", Patterns: []string{`zelle from`}},
		{Name: "payments", Patterns: []string{`zelle`, `purchase auth`}},
	}
}

func savingsSpecs() []CategorySpec {
	return []CategorySpec{
		{Name: "income", Patterns: []string{
			`PAYROLL`, `eDeposit in Branch`, `INTEREST PAYMENT`, `ONLINE TRANSFER FROM`, `interest`,
		}},
		{Name: "payments", Patterns: []string{
			`FID BKG SVC LLC MONEYLINE`, `Credit Card AUTO PAY`, `CRUNCH CLUB FEES`,
			`ONLINE TRANSFER REF #IB`, `ZELLE TO`, `PRIZEPICKS INTERNET`, `ONLINE TRANSFER TO`,
		}},
		{Name: "ignore", Patterns: []string{`ONLINE TRANSFER TO`}},
	}
}

func creditSpecs() []CategorySpec {
	return []CategorySpec{
		{Name: "food", Patterns: []string{
			`MCDONALD\S*`, `TACO BELL`, `CHICK-FIL-A`, `OLIVE GARDEN`, `7-ELEVEN`, `CHIPOTLE`,
			`CULVER'S`, `CHINA TASTE`, `SARASOTA BOBA TEA`, `DAIRY QUEEN`, `TST\* THE MELTING POT`,
			`FIRST WATCH`, `TARGET\.COM`,
		}},
		{Name: "material", Patterns: nil},
		{Name: "entertainment", Patterns: []string{
			`HI TEC PAINTBALL PARK`, `K1 SPEED TAMPA`, `THE MELTING POT`, `PAR'SMOOTHIE KING`,
			`RACETRAC`, `K1 SPEED`,
		}},
		{Name: "reoccuring", Patterns: []string{
			`ONLINE PAYMENT THANK YOU`, `GITHUB INC`, `AMZN Mktp US`, `PHOTOENFORCEMENT PROGRAM`,
		}},
		{Name: "other", Patterns: []string{`BIG DANS CAR WASH`, `EXXON`, `CHEGG ORDER`, `ROYAL TEA`, `PUBLIX`}},
	}
}

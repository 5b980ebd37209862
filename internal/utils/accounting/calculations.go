package accounting

import (
	"github.com/shopspring/decimal"
)

// Tolerance is the maximum absolute difference at which two monetary totals
// are still considered equal. Posting validation and the ledger summary's
// balanced flag both use it.
var Tolerance = decimal.NewFromFloat(1e-4)

// EqualWithinTolerance reports whether two amounts differ by at most Tolerance.
func EqualWithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Net returns the debit-minus-credit value of a movement. Running balances
// and account-list balances accumulate this figure regardless of account
// classification; sign interpretation is left to the caller.
func Net(debit, credit decimal.Decimal) decimal.Decimal {
	return debit.Sub(credit)
}

// SplitBalance splits a signed balance into debit and credit columns:
// a positive balance lands in the debit column, a negative one (credit
// normal) in the credit column as a positive figure.
func SplitBalance(balance decimal.Decimal) (debit, credit decimal.Decimal) {
	if balance.IsNegative() {
		return decimal.Zero, balance.Neg()
	}
	return balance, decimal.Zero
}

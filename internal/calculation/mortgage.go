package calculation

import (
	"github.com/shopspring/decimal"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// MonthlyMortgagePayment computes the level payment for an amortizing loan:
// P * r(1+r)^n / ((1+r)^n - 1) with r the monthly rate and n the term in
// months. A zero rate degenerates to straight-line principal/term. A
// non-positive principal or term yields a zero payment; that is a valid
// signal (no amortization possible), not an error.
func MonthlyMortgagePayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if principal.LessThanOrEqual(decimal.Zero) || termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return principal.Div(n)
	}
	monthlyRate := annualRate.Div(twelve)
	compounded := one.Add(monthlyRate).Pow(n)
	return principal.Mul(monthlyRate.Mul(compounded)).Div(compounded.Sub(one))
}

// amortizeAnnual advances a mortgage balance by one year at the annual rate
// with the given annual payment. Principal paid and the resulting balance
// are both floored at zero; a balance that is already zero is held there so
// floating-point residue never resurrects a paid-off loan.
func amortizeAnnual(balance, annualRate, annualPayment decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	interest := balance.Mul(annualRate)
	principal := annualPayment.Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	remaining := balance.Sub(principal)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PassiveIncomeStream is an income source that runs from StartYear until
// EndYear (nil means indefinite), growing at its own annual rate. It is
// read-only for the duration of a simulation call.
type PassiveIncomeStream struct {
	Name             string          `yaml:"name" toml:"name" json:"name"`
	StartYear        int             `yaml:"start_year" toml:"start_year" json:"start_year"`
	EndYear          *int            `yaml:"end_year,omitempty" toml:"end_year,omitempty" json:"end_year,omitempty"`
	MonthlyAmount    decimal.Decimal `yaml:"monthly_amount" toml:"monthly_amount" json:"monthly_amount"`
	AnnualGrowthRate decimal.Decimal `yaml:"annual_growth_rate" toml:"annual_growth_rate" json:"annual_growth_rate"`
	IsTaxable        bool            `yaml:"is_taxable" toml:"is_taxable" json:"is_taxable"`

	// TaxRate overrides the household effective rate for this stream.
	// Nil falls back to the household rate.
	TaxRate *decimal.Decimal `yaml:"tax_rate,omitempty" toml:"tax_rate,omitempty" json:"tax_rate,omitempty"`
}

// Validate checks the stream's lifecycle and amounts.
func (s PassiveIncomeStream) Validate() error {
	if s.StartYear < 0 {
		return fmt.Errorf("start year cannot be negative")
	}
	if s.EndYear != nil && *s.EndYear < s.StartYear {
		return fmt.Errorf("end year (%d) cannot precede start year (%d)", *s.EndYear, s.StartYear)
	}
	if s.MonthlyAmount.IsNegative() {
		return fmt.Errorf("monthly amount cannot be negative")
	}
	if s.AnnualGrowthRate.LessThan(decimal.NewFromInt(-1)) {
		return fmt.Errorf("annual growth rate cannot be less than -100%%")
	}
	if s.TaxRate != nil && (s.TaxRate.IsNegative() || s.TaxRate.GreaterThan(one)) {
		return fmt.Errorf("tax rate must be between 0 and 1")
	}
	return nil
}

// ActiveIn reports whether the stream pays out in the given projection year.
func (s PassiveIncomeStream) ActiveIn(year int) bool {
	return s.StartYear <= year && (s.EndYear == nil || year <= *s.EndYear)
}

// AnnualAmount is the stream's after-tax payout for a year, grown from its
// start year at the stream's own rate. Zero when the stream is inactive.
// Inflation adjustment, where it applies, is the caller's concern.
func (s PassiveIncomeStream) AnnualAmount(year int, householdTaxRate decimal.Decimal) decimal.Decimal {
	if !s.ActiveIn(year) {
		return decimal.Zero
	}
	yearsActive := year - s.StartYear
	growth := one.Add(s.AnnualGrowthRate).Pow(decimal.NewFromInt(int64(yearsActive)))
	amount := s.MonthlyAmount.Mul(decimal.NewFromInt(12)).Mul(growth)
	if s.IsTaxable {
		rate := householdTaxRate
		if s.TaxRate != nil {
			rate = *s.TaxRate
		}
		amount = amount.Mul(one.Sub(rate))
	}
	return amount
}

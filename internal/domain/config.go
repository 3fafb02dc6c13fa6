package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SimulationConfig is the complete input to one simulation run. It is
// immutable once validated: both engines read it but never write to it,
// and no ambient or session state is consulted anywhere else.
//
// All monetary fields are expressed in a single canonical unit of account.
// Display formatting and currency conversion belong to the caller.
type SimulationConfig struct {
	InitialLiquidWealth  decimal.Decimal `yaml:"initial_liquid_wealth" toml:"initial_liquid_wealth" json:"initial_liquid_wealth"`
	InitialPropertyValue decimal.Decimal `yaml:"initial_property_value" toml:"initial_property_value" json:"initial_property_value"`
	InitialMortgage      decimal.Decimal `yaml:"initial_mortgage" toml:"initial_mortgage" json:"initial_mortgage"`

	GrossAnnualIncome       decimal.Decimal `yaml:"gross_annual_income" toml:"gross_annual_income" json:"gross_annual_income"`
	EffectiveTaxRate        decimal.Decimal `yaml:"effective_tax_rate" toml:"effective_tax_rate" json:"effective_tax_rate"`
	PensionContributionRate decimal.Decimal `yaml:"pension_contribution_rate" toml:"pension_contribution_rate" json:"pension_contribution_rate"`

	MonthlyExpenses        decimal.Decimal `yaml:"monthly_expenses" toml:"monthly_expenses" json:"monthly_expenses"`
	MonthlyMortgagePayment decimal.Decimal `yaml:"monthly_mortgage_payment" toml:"monthly_mortgage_payment" json:"monthly_mortgage_payment"`

	PropertyAppreciation decimal.Decimal `yaml:"property_appreciation" toml:"property_appreciation" json:"property_appreciation"`
	MortgageInterestRate decimal.Decimal `yaml:"mortgage_interest_rate" toml:"mortgage_interest_rate" json:"mortgage_interest_rate"`

	ExpectedReturn      decimal.Decimal `yaml:"expected_return" toml:"expected_return" json:"expected_return"`
	ReturnVolatility    decimal.Decimal `yaml:"return_volatility" toml:"return_volatility" json:"return_volatility"`
	ExpectedInflation   decimal.Decimal `yaml:"expected_inflation" toml:"expected_inflation" json:"expected_inflation"`
	InflationVolatility decimal.Decimal `yaml:"inflation_volatility" toml:"inflation_volatility" json:"inflation_volatility"`
	SalaryInflation     decimal.Decimal `yaml:"salary_inflation" toml:"salary_inflation" json:"salary_inflation"`

	Years int   `yaml:"years" toml:"years" json:"years"`
	Paths int   `yaml:"paths" toml:"paths" json:"paths"`
	Seed  int64 `yaml:"seed" toml:"seed" json:"seed"`

	StartingAge   int             `yaml:"starting_age" toml:"starting_age" json:"starting_age"`
	RetirementAge int             `yaml:"retirement_age" toml:"retirement_age" json:"retirement_age"`
	PensionIncome decimal.Decimal `yaml:"pension_income" toml:"pension_income" json:"pension_income"`

	Events               []Event               `yaml:"events,omitempty" toml:"events,omitempty" json:"events,omitempty"`
	PassiveIncomeStreams []PassiveIncomeStream `yaml:"passive_income_streams,omitempty" toml:"passive_income_streams,omitempty" json:"passive_income_streams,omitempty"`

	Spouse *Spouse `yaml:"spouse,omitempty" toml:"spouse,omitempty" json:"spouse,omitempty"`
}

// Spouse is the optional second household member. Spouse income follows the
// same retirement arithmetic as the primary member, using the household tax
// and pension contribution rates.
type Spouse struct {
	Age               int             `yaml:"age" toml:"age" json:"age"`
	RetirementAge     int             `yaml:"retirement_age" toml:"retirement_age" json:"retirement_age"`
	GrossAnnualIncome decimal.Decimal `yaml:"gross_annual_income" toml:"gross_annual_income" json:"gross_annual_income"`

	// PensionIncome is a fixed annual amount received once the spouse has
	// retired. Unlike the primary member's pension income it is not drawn
	// from the household pension pot.
	PensionIncome decimal.Decimal `yaml:"pension_income,omitempty" toml:"pension_income,omitempty" json:"pension_income,omitempty"`
}

var one = decimal.NewFromInt(1)

// Validate rejects configurations the engines cannot meaningfully run.
// Engines assume a validated config; nothing is partially computed on error.
func (c *SimulationConfig) Validate() error {
	if c.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", c.Years)
	}
	if c.Paths <= 0 {
		return fmt.Errorf("paths must be positive, got %d", c.Paths)
	}
	if c.StartingAge < 0 {
		return fmt.Errorf("starting age cannot be negative")
	}
	if c.RetirementAge <= c.StartingAge {
		return fmt.Errorf("retirement age (%d) must be greater than starting age (%d)", c.RetirementAge, c.StartingAge)
	}
	for _, v := range []struct {
		name string
		val  decimal.Decimal
	}{
		{"initial liquid wealth", c.InitialLiquidWealth},
		{"initial property value", c.InitialPropertyValue},
		{"initial mortgage", c.InitialMortgage},
		{"gross annual income", c.GrossAnnualIncome},
		{"monthly expenses", c.MonthlyExpenses},
		{"monthly mortgage payment", c.MonthlyMortgagePayment},
		{"pension income", c.PensionIncome},
	} {
		if v.val.IsNegative() {
			return fmt.Errorf("%s cannot be negative", v.name)
		}
	}
	if c.EffectiveTaxRate.IsNegative() || c.EffectiveTaxRate.GreaterThan(one) {
		return fmt.Errorf("effective tax rate must be between 0 and 1")
	}
	if c.PensionContributionRate.IsNegative() || c.PensionContributionRate.GreaterThan(one) {
		return fmt.Errorf("pension contribution rate must be between 0 and 1")
	}
	if c.EffectiveTaxRate.Add(c.PensionContributionRate).GreaterThan(one) {
		return fmt.Errorf("tax rate plus pension contribution rate cannot exceed 1")
	}
	if c.ReturnVolatility.IsNegative() {
		return fmt.Errorf("return volatility cannot be negative")
	}
	if c.InflationVolatility.IsNegative() {
		return fmt.Errorf("inflation volatility cannot be negative")
	}
	if c.ExpectedInflation.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("expected inflation cannot be less than -10%% (extreme deflation)")
	}
	if c.MortgageInterestRate.IsNegative() {
		return fmt.Errorf("mortgage interest rate cannot be negative")
	}

	for i, ev := range c.Events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.Name, err)
		}
		if ev.Year > c.Years {
			return fmt.Errorf("event %d (%s): year %d is beyond the %d-year horizon", i, ev.Name, ev.Year, c.Years)
		}
	}
	for i, s := range c.PassiveIncomeStreams {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("passive income stream %d (%s): %w", i, s.Name, err)
		}
	}
	if c.Spouse != nil {
		if err := c.Spouse.Validate(); err != nil {
			return fmt.Errorf("spouse: %w", err)
		}
	}
	return nil
}

// Validate checks the spouse sub-record.
func (s *Spouse) Validate() error {
	if s.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if s.RetirementAge <= s.Age {
		return fmt.Errorf("retirement age (%d) must be greater than current age (%d)", s.RetirementAge, s.Age)
	}
	if s.GrossAnnualIncome.IsNegative() {
		return fmt.Errorf("gross annual income cannot be negative")
	}
	if s.PensionIncome.IsNegative() {
		return fmt.Errorf("pension income cannot be negative")
	}
	return nil
}

// InitialNetWorth is the year-zero net worth every simulated path starts
// from: liquid wealth plus property value minus mortgage debt.
func (c *SimulationConfig) InitialNetWorth() decimal.Decimal {
	return c.InitialLiquidWealth.Add(c.InitialPropertyValue).Sub(c.InitialMortgage)
}

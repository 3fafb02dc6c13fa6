package calculation

import (
	"github.com/finsim/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// YearIncome is one household member's income picture for a single
// projection year, in nominal terms. The stochastic engine layers its own
// per-path inflation adjustment on top of the pension figure.
type YearIncome struct {
	Retired             bool
	Gross               decimal.Decimal
	TakeHome            decimal.Decimal
	PensionContribution decimal.Decimal
}

// memberParams carries one member's inputs through the income arithmetic so
// the primary and spouse share a single code path.
type memberParams struct {
	StartingAge   int
	RetirementAge int
	GrossIncome   decimal.Decimal
	TaxRate       decimal.Decimal
	PensionRate   decimal.Decimal
	PensionIncome decimal.Decimal
}

// memberYearIncome is the household income engine for one member.
//
// The member is retired in a year iff their age that year strictly exceeds
// the retirement age: the year age equals retirement age is still a working
// year. Both engines use this one rule.
//
// Pre-retirement, gross income compounds at the deterministic salary growth
// already folded into salaryGrowth (the caller passes (1+salary_inflation)^year);
// take-home strips tax and the pension contribution. Post-retirement,
// take-home is the fixed nominal pension income and the contribution is zero.
func memberYearIncome(year int, m memberParams, salaryGrowth decimal.Decimal) YearIncome {
	currentAge := m.StartingAge + year
	if currentAge > m.RetirementAge {
		return YearIncome{Retired: true, TakeHome: m.PensionIncome}
	}
	gross := m.GrossIncome.Mul(salaryGrowth)
	return YearIncome{
		Gross:               gross,
		TakeHome:            gross.Mul(one.Sub(m.TaxRate).Sub(m.PensionRate)),
		PensionContribution: gross.Mul(m.PensionRate),
	}
}

// householdIncome computes primary and spouse incomes for a year. The
// spouse result is zero-valued when no spouse is configured; spouse logic
// is fully parallel to the primary's, using the household tax and pension
// rates.
func householdIncome(cfg *domain.SimulationConfig, year int, salaryGrowth decimal.Decimal) (primary, spouse YearIncome) {
	primary = memberYearIncome(year, memberParams{
		StartingAge:   cfg.StartingAge,
		RetirementAge: cfg.RetirementAge,
		GrossIncome:   cfg.GrossAnnualIncome,
		TaxRate:       cfg.EffectiveTaxRate,
		PensionRate:   cfg.PensionContributionRate,
		PensionIncome: cfg.PensionIncome,
	}, salaryGrowth)
	if cfg.Spouse != nil {
		spouse = memberYearIncome(year, memberParams{
			StartingAge:   cfg.Spouse.Age,
			RetirementAge: cfg.Spouse.RetirementAge,
			GrossIncome:   cfg.Spouse.GrossAnnualIncome,
			TaxRate:       cfg.EffectiveTaxRate,
			PensionRate:   cfg.PensionContributionRate,
			PensionIncome: cfg.Spouse.PensionIncome,
		}, salaryGrowth)
	}
	return primary, spouse
}

// passiveIncomeForYear sums the after-tax annual amount of every stream
// active in the year. Passive income is identical across simulation paths;
// only its inflation adjustment varies per path.
func passiveIncomeForYear(cfg *domain.SimulationConfig, year int) decimal.Decimal {
	total := decimal.Zero
	for _, stream := range cfg.PassiveIncomeStreams {
		total = total.Add(stream.AnnualAmount(year, cfg.EffectiveTaxRate))
	}
	return total
}
